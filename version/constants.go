// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import "fmt"

// Client is the name the tooling reports itself as.
const Client = "precompiletool"

// Current is the version of this module.
var Current = &Semantic{
	Major: 1,
	Minor: 0,
	Patch: 0,
}

// ClientString is the client/version pair the CLI reports.
func ClientString() string {
	return fmt.Sprintf("%s/%d.%d.%d", Client, Current.Major, Current.Minor, Current.Patch)
}
