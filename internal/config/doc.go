// Package config loads the vango-refs configuration.
//
// Configuration is read with viper from vango-refs.yaml (or .json/.toml) in
// the working directory, or from an explicit --config path. Environment
// variables prefixed with VANGO_REFS_ override file values.
//
// # Configuration File Structure
//
//	fixture: tree.yaml
//	log:
//	  level: debug
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: vango
//	serve:
//	  addr: localhost:7070
//	trace:
//	  enabled: false
//	  exporter: stdout
//
// # Usage
//
//	v := config.New()
//	cfg, err := config.Load(v, ".", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger(os.Stderr)
package config
