// Command hold runs the Hold-Placement stage: re-embed the Discovery
// picks as per-book instructions, have the agent log in and place holds,
// and print its final report. The report is not persisted; the curated
// status document is the authoritative record downstream.
package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/daltonw/bookline/pipeline/contract"
	"github.com/daltonw/bookline/pipeline/family"
	"github.com/daltonw/bookline/pipeline/picks"
	"github.com/daltonw/bookline/pipeline/stage"
	"github.com/daltonw/bookline/pipeline/task"
	"github.com/daltonw/bookline/pkg/agentless"
	"github.com/daltonw/bookline/pkg/browseragent"
	configx "github.com/daltonw/bookline/pkg/config"
	_ "github.com/daltonw/bookline/pkg/logger/autoload"
)

type appConfig struct {
	AgentMode string `envconfig:"AGENT_MODE" default:"browser"`
}

type libraryConfig struct {
	Username string `split_words:"true" required:"true"`
	Password string `split_words:"true" required:"true"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[appConfig]("")
	famCfg := configx.MustNew[family.Config]("FAMILY")
	libCfg := configx.MustNew[libraryConfig]("LIBRARY")

	agent := buildAgent(appCfg.AgentMode)
	store := picks.NewFileStore(picks.DefaultPath)
	creds := task.Credentials{Username: libCfg.Username, Password: libCfg.Password}

	holdStage, err := stage.NewHoldPlacement(famCfg.Profile(), creds, agent, store)
	if err != nil {
		log.Fatal().Err(err).Msg("build hold placement stage")
	}

	report, err := holdStage.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("hold placement stage incomplete")
	}
	fmt.Println(report)
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
