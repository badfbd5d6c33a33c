// Command logdump streams the records of exported JSON log dumps.
package main

import "github.com/arloliu/logdump/internal/cli"

func main() {
	cli.Execute()
}
