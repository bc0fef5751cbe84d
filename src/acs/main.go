// acs is the account console: a CLI, interactive shell and HTTP API over a
// SQLite account store.
package main

import (
	"github.com/bitswalk/acs/src/acs/core"
)

func main() {
	core.Execute()
}
