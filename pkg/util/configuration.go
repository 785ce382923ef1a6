package util

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"strings"

	"github.com/google/go-jsonnet"

	"google.golang.org/grpc/codes"
)

// UnmarshalConfigurationFromFile reads a Jsonnet file, evaluates it
// and unmarshals the output into a configuration structure. Environment
// variables are made available to the Jsonnet file as external
// variables, so that they may be obtained using std.extVar().
func UnmarshalConfigurationFromFile(path string, configuration interface{}) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return StatusWrapWithCode(err, codes.NotFound, "Failed to read file contents")
	}

	vm := jsonnet.MakeVM()
	for _, env := range os.Environ() {
		if parts := strings.SplitN(env, "=", 2); len(parts) == 2 {
			vm.ExtVar(parts[0], parts[1])
		}
	}
	jsonnetOutput, err := vm.EvaluateSnippet(path, string(data))
	if err != nil {
		return StatusWrapWithCode(err, codes.InvalidArgument, "Failed to evaluate configuration")
	}

	decoder := json.NewDecoder(bytes.NewBufferString(jsonnetOutput))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(configuration); err != nil {
		return StatusWrapWithCode(err, codes.InvalidArgument, "Failed to unmarshal configuration")
	}
	return nil
}
