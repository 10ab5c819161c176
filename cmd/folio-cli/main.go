package main

import "folio/cmd/folio-cli/cmd"

func main() {
	cmd.Execute()
}
