// Command demoshell serves the WebAssembly demo shell and checks the
// external demo module it dispatches to.
package main

func main() {
	Execute()
}
