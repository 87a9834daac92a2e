/*
Copyright © 2025 Grace Matenda (gmatenda@gmail.com)
*/
package main

import "github.com/gmatenda/variant-bench/cmd"

func main() {
	cmd.Execute()
}
