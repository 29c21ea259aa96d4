// Command genspec builds OpenAPI documents with the genspec builder. It
// prints or serves a sample document describing a dataset discovery API.
package main

func main() {
	Execute()
}
