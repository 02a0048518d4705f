package main

import "github.com/init-pkg/print-pricing/internal/bootstrap"

//	@title		Print pricing API
//	@version	1.0
//	@BasePath	/
func main() {
	bootstrap.Run()
}
