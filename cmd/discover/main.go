// Command discover runs the Discovery stage: aggregate the family's
// recent interests, hand the browsing agent a book-finding task, and
// persist the accepted report as the picks artifact.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/daltonw/bookline/pipeline/contract"
	"github.com/daltonw/bookline/pipeline/family"
	"github.com/daltonw/bookline/pipeline/interests"
	"github.com/daltonw/bookline/pipeline/picks"
	"github.com/daltonw/bookline/pipeline/stage"
	"github.com/daltonw/bookline/pkg/agentless"
	"github.com/daltonw/bookline/pkg/browseragent"
	configx "github.com/daltonw/bookline/pkg/config"
	"github.com/daltonw/bookline/pkg/firestorex"
	_ "github.com/daltonw/bookline/pkg/logger/autoload"
)

type appConfig struct {
	AgentMode string `envconfig:"AGENT_MODE" default:"browser"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[appConfig]("")
	famCfg := configx.MustNew[family.Config]("FAMILY")

	agent := buildAgent(appCfg.AgentMode)
	aggregator := interests.NewAggregator(buildSources(ctx)...)
	store := picks.NewFileStore(picks.DefaultPath)

	discovery, err := stage.NewDiscovery(famCfg.Profile(), aggregator, agent, store)
	if err != nil {
		log.Fatal().Err(err).Msg("build discovery stage")
	}

	if _, err := discovery.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("discovery stage incomplete")
	}
	log.Info().Str("path", picks.DefaultPath).Msg("picks saved")
}

func buildAgent(mode string) contractx.Agent {
	switch mode {
	case "agentless":
		agent, err := agentless.New(*configx.MustNew[agentless.Config]("LLM"))
		if err != nil {
			log.Fatal().Err(err).Msg("build agentless agent")
		}
		return agent
	default:
		agent, err := browseragent.New(*configx.MustNew[browseragent.Config]("AGENT"))
		if err != nil {
			log.Fatal().Err(err).Msg("build browser agent")
		}
		return agent
	}
}

// buildSources returns the interest source chain: the document store when
// it is configured and reachable, always followed by the static sample
// fallback.
func buildSources(ctx context.Context) []interests.Source {
	var sources []interests.Source

	fsCfg := configx.MustNew[firestorex.Config]("FIRESTORE")
	if fsCfg.ProjectID != "" {
		client, err := firestorex.NewClient(ctx, *fsCfg)
		if err != nil {
			log.Warn().Err(err).Msg("document store unavailable, using sample interests")
		} else {
			sources = append(sources, interests.NewFirestoreSource(client))
		}
	}

	return append(sources, interests.StaticSource{})
}
