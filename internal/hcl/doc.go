// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for file discovery, parsing, expression evaluation and the
// translation of HCL blocks into the format-agnostic config.Model.
//
// A workspace file declares platforms:
//
//	platform "ubu1604" {
//	  manifests = "bs_deps/${platform.name}"
//	  trigger   = ["mumble-library"]
//
//	  builder "mumble-extra" {
//	    produces = ["mumble-extra"]
//	    consumes = concat(["mumble"], ["libmumble-library-dev"])
//	  }
//	}
//
// Expressions are evaluated with a `platform` object in scope (currently
// only `platform.name`) and a small set of collection and string functions.
// Relative manifest paths are resolved against the declaring file.
package hcl
