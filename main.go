// SPDX-License-Identifier: MPL-2.0

package main

import cmd "petripack-cli/cmd/petripack"

func main() {
	cmd.Execute()
}
