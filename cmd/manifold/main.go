// Manifold Cube Engine - CLI application for playing and analyzing manifold cube games.
package main

import (
	"github.com/hexwild/manifoldcube/internal/cli"
)

func main() {
	cli.Execute()
}
