// Package di wires r2g2's replaceable collaborators with samber/do.
//
// Commands build a fresh injector per invocation through [Runtime.Invoke];
// tests pass extra modules to override the defaults.
package di
