package otp

import (
	"context"

	"otpctl/pkg/graphql"
)

// Doer sends a GraphQL request. *graphql.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, req graphql.Request, out any) error
}

// API issues the server-info and trip queries.
type API struct {
	client Doer
}

func NewAPI(client Doer) *API {
	return &API{client: client}
}

// ServerInfo fetches the backend's build and time zone metadata.
func (a *API) ServerInfo(ctx context.Context) (*ServerInfo, error) {
	var out struct {
		ServerInfo *ServerInfo `json:"serverInfo"`
	}
	err := a.client.Do(ctx, graphql.Request{
		OperationName: "serverInfo",
		Query:         serverInfoQuery,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.ServerInfo == nil {
		return nil, &graphql.Error{Kind: graphql.KindGraphQL, Message: "response has no serverInfo"}
	}
	return out.ServerInfo, nil
}

// Trip plans a journey for vars. Invalid variables fail before any request is sent.
func (a *API) Trip(ctx context.Context, vars TripQueryVariables) (*TripQueryResult, error) {
	if err := vars.Validate(); err != nil {
		return nil, err
	}

	var out struct {
		Trip *TripQueryResult `json:"trip"`
	}
	err := a.client.Do(ctx, graphql.Request{
		OperationName: "trip",
		Query:         tripQuery,
		Variables:     vars.GraphQLVariables(),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Trip == nil {
		return nil, &graphql.Error{Kind: graphql.KindGraphQL, Message: "response has no trip"}
	}
	return out.Trip, nil
}
