// Command seedfamily writes the families/{id} profile document to the
// document store. One-shot setup tool.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/daltonw/bookline/pipeline/family"
	configx "github.com/daltonw/bookline/pkg/config"
	"github.com/daltonw/bookline/pkg/firestorex"
	_ "github.com/daltonw/bookline/pkg/logger/autoload"
)

type familyDoc struct {
	ParentName      string `firestore:"parent_name"`
	ChildName       string `firestore:"child_name"`
	ChildAge        int    `firestore:"child_age"`
	PreferredBranch string `firestore:"preferred_branch"`
	PhoneNumber     string `firestore:"phone_number"`
}

func main() {
	ctx := context.Background()

	famCfg := configx.MustNew[family.Config]("FAMILY")

	client, err := firestorex.NewClient(ctx, *configx.MustNew[firestorex.Config]("FIRESTORE"))
	if err != nil {
		log.Fatal().Err(err).Msg("connect document store")
	}
	defer client.Close()

	doc := familyDoc{
		ParentName:      famCfg.ParentName,
		ChildName:       famCfg.ChildName,
		ChildAge:        famCfg.ChildAge,
		PreferredBranch: famCfg.PreferredBranch,
		PhoneNumber:     famCfg.PhoneNumber,
	}
	if _, err := client.Collection("families").Doc(famCfg.ID).Set(ctx, doc); err != nil {
		log.Fatal().Err(err).Str("family", famCfg.ID).Msg("seed family document")
	}
	log.Info().Str("family", famCfg.ID).Msg("seeded family document")
}
