package convert

import (
	"github.com/jacoelho/pm2http/internal/pm/ast"
	"github.com/jacoelho/pm2http/internal/pm/normalize"
	"github.com/jacoelho/pm2http/internal/pm/requestmap"
	"github.com/jacoelho/pm2http/internal/pm/template"
	"github.com/jacoelho/pm2http/internal/restclient/model"
)

// Outcome pairs one leaf with its mapping result.
type Outcome struct {
	Node   normalize.RequestNode
	Result requestmap.Result
}

// Failure is one leaf that could not be converted.
type Failure struct {
	Name string
	Path []string
	Err  error
}

func (f Failure) Error() string {
	return f.Name + ": " + f.Err.Error()
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Conversion is the result of converting a whole collection.
// Requests and Failures each keep traversal order.
type Conversion struct {
	Variables model.KeyValues
	Outcomes  []Outcome
	Requests  []model.Request
	Failures  []Failure
}

// Collection walks every leaf, maps it and partitions the outcomes.
// It never fails; per-leaf errors are returned as Failures.
func Collection(collection ast.Collection) Conversion {
	nodes := normalize.Requests(collection)

	outcomes := make([]Outcome, 0, len(nodes))
	for _, node := range nodes {
		outcomes = append(outcomes, Outcome{
			Node:   node,
			Result: requestmap.Request(node),
		})
	}

	conversion := Partition(outcomes)
	conversion.Variables = Variables(collection.Variable)
	return conversion
}

// Partition splits outcomes into successes and failures, preserving order within each.
func Partition(outcomes []Outcome) Conversion {
	conversion := Conversion{Outcomes: outcomes}
	for _, outcome := range outcomes {
		if outcome.Result.Converted() {
			conversion.Requests = append(conversion.Requests, outcome.Result.Request)
			continue
		}
		conversion.Failures = append(conversion.Failures, Failure{
			Name: outcome.Node.Name,
			Path: outcome.Node.FullPath(),
			Err:  outcome.Result.Err,
		})
	}
	return conversion
}

// Variables returns enabled collection variables as file-level variables.
func Variables(variables []ast.Variable) model.KeyValues {
	var out model.KeyValues
	for _, variable := range variables {
		if variable.Disabled || variable.Key == "" {
			continue
		}
		out = append(out, model.KeyValue{
			Key:   variable.Key,
			Value: template.Normalize(variable.String()),
		})
	}
	return out
}
