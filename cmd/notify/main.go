// Command notify runs the Notification stage: parse the status document,
// keep the ready-for-pickup records, write the books context for the
// voice agent, then trigger the outbound call. No ready books is a
// normal zero-effort exit.
package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	contractx "github.com/daltonw/bookline/pipeline/contract"
	"github.com/daltonw/bookline/pipeline/family"
	"github.com/daltonw/bookline/pipeline/holds"
	"github.com/daltonw/bookline/pipeline/notify"
	"github.com/daltonw/bookline/pipeline/stage"
	"github.com/daltonw/bookline/pkg/cartesia"
	configx "github.com/daltonw/bookline/pkg/config"
	"github.com/daltonw/bookline/pkg/firestorex"
	_ "github.com/daltonw/bookline/pkg/logger/autoload"
)

func main() {
	ctx := context.Background()

	famCfg := configx.MustNew[family.Config]("FAMILY")
	if famCfg.PhoneNumber == "" {
		log.Fatal().Msg("FAMILY_PHONE_NUMBER is required")
	}

	fsCfg := configx.MustNew[firestorex.Config]("FIRESTORE")
	fsClient, err := firestorex.NewClient(ctx, *fsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect document store")
	}
	defer fsClient.Close()

	pendingCalls, err := notify.NewFirestorePendingCalls(fsClient)
	if err != nil {
		log.Fatal().Err(err).Msg("build pending call store")
	}

	trigger := cartesia.MustNew(*configx.MustNew[cartesia.Config]("CARTESIA"))

	notifier, err := notify.New(pendingCalls, trigger, famCfg.PhoneNumber)
	if err != nil {
		log.Fatal().Err(err).Msg("build notifier")
	}

	notification, err := stage.NewNotification(holds.DefaultPath, notifier)
	if err != nil {
		log.Fatal().Err(err).Msg("build notification stage")
	}

	if err := notification.Run(ctx); err != nil {
		if errors.Is(err, contractx.ErrNothingToDo) {
			log.Info().Msg("no books are ready for pickup, no call needed")
			return
		}
		log.Fatal().Err(err).Msg("notification stage failed")
	}
}
