package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// functions are available in every expression.
var functions = map[string]function.Function{
	"concat":   stdlib.ConcatFunc,
	"distinct": stdlib.DistinctFunc,
	"format":   stdlib.FormatFunc,
	"join":     stdlib.JoinFunc,
	"lower":    stdlib.LowerFunc,
	"sort":     stdlib.SortFunc,
	"upper":    stdlib.UpperFunc,
}

// newEvalContext exposes the platform being decoded to its expressions.
func newEvalContext(platform string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"platform": cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal(platform),
			}),
		},
		Functions: functions,
	}
}

// evalString evaluates expr as a string. A missing attribute yields "".
func evalString(expr hcl.Expression, evalCtx *hcl.EvalContext) (string, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}

	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: expected a string, got %s: %w", expr.Range(), val.Type().FriendlyName(), err)
	}

	var out string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return "", fmt.Errorf("%s: %w", expr.Range(), err)
	}
	return out, nil
}

// evalStringList evaluates expr as a list of strings. A missing attribute
// yields nil. Tuples and sets are accepted too.
func evalStringList(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	converted, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("%s: expected a list of strings, got %s: %w", expr.Range(), val.Type().FriendlyName(), err)
	}
	if converted.LengthInt() == 0 {
		return []string{}, nil
	}

	var out []string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", expr.Range(), err)
	}
	return out, nil
}
