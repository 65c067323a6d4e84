// SPDX-License-Identifier: MPL-2.0

package main

import cmd "typo3-setup-cli/cmd/typo3setup"

func main() {
	cmd.Execute()
}
