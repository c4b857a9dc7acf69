// Package main demonstrates usage of the scg-pipeline-error catalog.
package main

import (
	"errors"
	"fmt"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
)

func main() {
	// Direct construction
	e := stageerr.NewOutputDuplication("model.pkl", []string{"train.dvc", "retrain.dvc"})
	fmt.Println(e.Error())
	fmt.Println(e.Code(), e.Key(), e.Context())

	// Branch on the structured payload instead of the message
	if d, ok := e.Detail().(stageerr.OutputDuplication); ok {
		fmt.Println("conflicting stages:", d.Stages)
	}

	// Chain a lower-level failure; %+v shows the cause and its trace
	cause := errors.New("yaml: line 4: mapping values are not allowed in this context")
	perr := stageerr.NewParserError(stageerr.WithCause(cause))
	fmt.Printf("%v\n%+v\n", perr, perr)

	// Misuse is reported separately from the catalog
	if _, err := stageerr.New(stageerr.OutputDuplication{Output: "model.pkl"}); errors.Is(err, stageerr.ErrInvalidConstruction) {
		fmt.Println(err)
	}
}
