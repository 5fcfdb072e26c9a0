// Package vango mounts component trees and drives their reference hooks.
//
// A page is mounted with MountPage. Its template may place child components
// with vdom.Comp placeholders; placeholders whose name is listed in the
// Components option are mounted as children automatically:
//
//	page, err := vango.MountPage(ctx, homeDef, nil,
//	    vango.WithComponents(vango.Components{"item-card": cardDef}),
//	)
//
//	items := vango.AsInstances(page.Ref("items"))
//
// Every instance gets a refs.Hooks value. Mount runs Init and Created;
// Unmount disposes the instance's Owner, which detaches descendants before
// their parents.
//
// # Thread Safety
//
// Owners and instances guard their state with mutexes. Lifecycle dispatch
// itself is expected to be sequential per page.
package vango
