// Package sports lists the api-sports endpoints known to the tool. Adding a
// sport only needs a new Spec in the matching table.
package sports

import "apisport/internal/summoner/acquire"

const (
	Football   = "football"
	Basketball = "basketball"
	Hockey     = "hockey"
)

var matchSpecs = []acquire.Spec{
	{Host: "v3.football.api-sports.io", Sport: Football, Path: "fixtures"},
	{Host: "v1.basketball.api-sports.io", Sport: Basketball, Path: "games"},
	{Host: "v1.hockey.api-sports.io", Sport: Hockey, Path: "games"},
}

var teamSpecs = []acquire.Spec{
	{Host: "v3.football.api-sports.io", Sport: Football, Path: "teams", Defaults: acquire.Params{}},
	{Host: "v1.basketball.api-sports.io", Sport: Basketball, Path: "teams", Defaults: acquire.Params{}},
	{Host: "v1.hockey.api-sports.io", Sport: Hockey, Path: "teams", Defaults: acquire.Params{}},
}

// Matches returns the registry of fixture clients
func Matches(opts acquire.Options) *acquire.Registry {
	return build(matchSpecs, opts)
}

// Teams returns the registry of team clients
func Teams(opts acquire.Options) *acquire.Registry {
	return build(teamSpecs, opts)
}

func build(specs []acquire.Spec, opts acquire.Options) *acquire.Registry {
	reg := acquire.NewRegistry()
	for _, spec := range specs {
		reg.Register(acquire.NewClient(spec, opts))
	}
	return reg
}
