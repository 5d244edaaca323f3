package requestmap

import (
	"fmt"
	"strings"

	"github.com/jacoelho/pm2http/internal/pm/ast"
	"github.com/jacoelho/pm2http/internal/pm/diagnostics"
	"github.com/jacoelho/pm2http/internal/pm/report"
	"github.com/jacoelho/pm2http/internal/restclient/model"
)

const authorizationHeader = "Authorization"

// applyAuth maps the effective auth onto headers or query parameters.
// Values already set on the request win over inherited auth.
func applyAuth(auth *ast.Auth, headers, query model.KeyValues) (model.KeyValues, model.KeyValues, []report.Issue) {
	if auth == nil {
		return headers, query, nil
	}

	switch auth.Type {
	case "bearer":
		token, _ := auth.Param("token")
		headers = mergeHeaders(headers, model.KeyValues{{Key: authorizationHeader, Value: "Bearer " + token}})
	case "basic":
		username, _ := auth.Param("username")
		password, _ := auth.Param("password")
		headers = mergeHeaders(headers, model.KeyValues{{Key: authorizationHeader, Value: "Basic " + username + ":" + password}})
	case "apikey":
		key, _ := auth.Param("key")
		value, _ := auth.Param("value")
		if key == "" {
			return headers, query, []report.Issue{
				diagnostics.NewIssue(report.CodeAuthNotMapped, "apikey auth has no key; define the header manually"),
			}
		}
		in, _ := auth.Param("in")
		if strings.EqualFold(in, "query") {
			if _, ok := query.Get(key); !ok {
				query = append(query, model.KeyValue{Key: key, Value: value})
			}
			break
		}
		headers = mergeHeaders(headers, model.KeyValues{{Key: key, Value: value}})
	default:
		if headers.HasFold(authorizationHeader) {
			break
		}
		return headers, query, []report.Issue{
			diagnostics.NewIssue(report.CodeAuthNotMapped, fmt.Sprintf("auth type %s was not mapped; define equivalent headers manually", auth.Type)),
		}
	}

	return headers, query, nil
}
