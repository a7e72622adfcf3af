package main

import "github.com/oshokin/radiation-monitor/cmd/radiation-monitor/cmd"

func main() {
	cmd.Execute()
}
