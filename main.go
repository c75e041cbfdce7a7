package main

import "github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/cmd"

func main() {
	cmd.Execute()
}
