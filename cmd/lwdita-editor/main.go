// Command lwdita-editor compiles LwDITA editor schemas and converts
// documents between the JDITA AST and the editor tree.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
