package gasbuddy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const report_graphql_query = "graphql.query"

type graphqlRequest struct {
	Name     string `json:"operationName"`
	Variable any    `json:"variables"`
	Query    string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse[T any] struct {
	Data   *T             `json:"data"`
	Errors []graphqlError `json:"errors"`
}

func graphqlQuery[O any](
	ctx context.Context,
	client *client,
	name,
	query string,
	variables any,
	output *O,
) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", name))
	defer span.End()

	client.tel.ReportDebug(report_graphql_query, name, variables)

	body, err := json.Marshal(graphqlRequest{
		Name:     name,
		Query:    query,
		Variable: variables,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize json query")
		return fmt.Errorf("json marshal: %w", err)
	}
	span.SetAttributes(attribute.String("variables", fmt.Sprint(variables)))

	res, err := client.http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(body).
		Post("/graphql")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return fmt.Errorf("fetch: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		err := &StatusError{Operation: name, Status: res.StatusCode()}
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return err
	}

	parsed := graphqlResponse[O]{}
	err = json.Unmarshal(res.Body(), &parsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return fmt.Errorf("unmarshal json: %w", err)
	}
	if parsed.Data == nil {
		messages := make([]string, len(parsed.Errors))
		for i, e := range parsed.Errors {
			messages[i] = e.Message
		}
		err := errors.New("graphql response has no data")
		if len(messages) > 0 {
			err = fmt.Errorf("graphql errors: %s", strings.Join(messages, "; "))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "no data")
		return err
	}
	if len(parsed.Errors) > 0 {
		client.tel.ReportWarning(report_graphql_query, name, parsed.Errors)
	}

	*output = *parsed.Data
	return nil
}
