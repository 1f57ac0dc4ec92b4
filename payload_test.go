package canonform_test

import (
	"testing"

	"github.com/dop251/goja"

	"github.com/grahms/canonform"
	"github.com/grahms/canonform/jsvalue"
)

func Test_JSPayload_QSOStrictnessLevels(t *testing.T) {
	v, err := jsvalue.Eval(goja.New(), payload)
	if err != nil {
		t.Fatal(err)
	}

	norm, err := canonform.ToQSO(v, canonform.QSONormalize)
	if err != nil {
		t.Fatal(err)
	}
	todos := norm.(map[string]any)["todos"].([]any)
	if len(todos) != 0 {
		t.Fatalf("want embedded todos dropped, got %v", todos)
	}
	tags := norm.(map[string]any)["tags"].([]any)
	want := []string{"next", "14", "true"}
	if len(tags) != len(want) {
		t.Fatalf("want %d tags, got %v", len(want), tags)
	}
	for i, w := range want {
		if tags[i] != w {
			t.Fatalf("tag[%d] want %q got %q", i, w, tags[i])
		}
	}
	if _, ok := norm.(map[string]any)["onSubmit"]; ok {
		t.Fatal("functions must be dropped")
	}

	if _, err := canonform.ToQSO(v, canonform.QSORejectEmbedded); err == nil {
		t.Fatal("want embedded todos rejected")
	}

	cerr, ok := canonform.AsConversionError(errOf(canonform.ToQSO(v, canonform.QSOStrict)))
	if !ok {
		t.Fatal("want a conversion error")
	}
	if cerr.Path != "$.onSubmit" || cerr.Code != canonform.CodeFunctionNotConvertible {
		t.Fatalf("want function failure at $.onSubmit, got %v", cerr)
	}
}

func errOf(_ any, err error) error { return err }

const payload = `{
	title: "Todo App",
	created: new Date(Date.UTC(2024, 0, 1)),
	tags: ["next", 14, true, null, undefined],
	todos: [
		{text: "write page.tsx", done: false},
		{text: "write api/todos.ts", done: true, due: new Date(0)},
	],
	onSubmit(event) { return event.preventDefault(); },
	meta: {reminder: /\d+m/, version: 1.5},
}`
