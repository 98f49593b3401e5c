package main

import "github/chapool/dex-wallet/cmd"

func main() {
	cmd.Execute()
}
