// Package widget renders the Galaxy <inputs> fragment for one classified
// parameter.
//
// Every non-variadic parameter is wrapped in an optional toggle. Inside it
// sits either one concrete param or, for undetermined parameters, an 8-way
// type conditional. The variadic tail becomes a repeat of name/value pairs.
package widget
