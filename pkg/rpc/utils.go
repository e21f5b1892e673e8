package rpc

import (
	"reflect"
	"strings"
)

// createResponse creates a StdResponse with the given body and error
func createResponse[T any](body T, err error) StdResponse[T] {
	if err != nil {
		errMsg := err.Error()
		return StdResponse[T]{
			Body:  body,
			Error: &errMsg,
		}
	}
	return StdResponse[T]{
		Body:  body,
		Error: nil,
	}
}

// RouteFor returns the path a request of type T is served on: "/" followed
// by the type name.
func RouteFor[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return "/" + t.Name()
}

func endpoint(baseURL, route string) string {
	return strings.TrimSuffix(baseURL, "/") + route
}
