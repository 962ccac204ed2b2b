// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "zapper-cli/cmd/zapper"
)

func main() {
	cmd.Execute()
}
