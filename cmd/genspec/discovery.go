package main

import (
	"github.com/Gobd/genspec/openapi"
)

// discovery builds the sample document printed by demo and served by serve.
func discovery() *openapi.Builder {
	return openapi.New("Discovery App", "master",
		openapi.WithDescription("Find and manage datasets."),
	).
		License("MIT", "https://opensource.org/licenses/MIT").
		Server("https://{env}.example.com/api").Variable("env", "prod", "prod", "staging").End().
		Tag("datasets", "Dataset catalogue").
		Path("/dataset").
		Get("list_datasets").
		Summary("List datasets").
		Tag("datasets").
		Parameter("start", openapi.InQuery, false).Type("integer", openapi.Minimum(0)).End().
		Parameter("size", openapi.InQuery, false).Type("integer", openapi.Default(0), openapi.Maximum(20)).End().
		Parameter("private", openapi.InQuery, true).Type("boolean").End().
		End().
		End().
		Path("/dataset/{id_}").
		Parameter("id_", openapi.InPath, true).Type("string").End().
		Get("get_dataset").
		Tag("datasets").
		Parameter("meta", openapi.InQuery, false).Type("boolean", openapi.Describe("Include metadata.")).End().
		Response("404", "Not found").
		End().
		Delete("del_dataset").
		Tag("datasets").
		Response("404", "Not found").
		End().
		End()
}
