package main

import "github.com/iliadmitriev/github-metrics/cmd"

func main() {
	cmd.Execute()
}
