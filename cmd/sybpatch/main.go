// Command sybpatch packs and unpacks SYB archives from the game Syberia 2.
//
// Usage:
//
//	sybpatch [<flags>] unpack <inputPath> <outputPath>
//	sybpatch [<flags>] pack <inputPath> <outputPath>
//	sybpatch [<flags>] list [--digest] <path>
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
