// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package supervisor provides process supervision for the Agora server using
suture v4.

The tree groups long-running services into two layers so that a failure in
one does not restart the other:

	RootSupervisor ("agora")
	├── DataSupervisor ("data-layer")
	│   ├── StoreMonitorService (if STORE_HEALTH_INTERVAL > 0)
	│   └── StoreGCService (badger only, if BADGER_GC_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff. A service that returns
suture.ErrDoNotRestart, such as a maintenance loop configured with a zero
interval, stays down. Supervisor events are logged through sutureslog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStoreMonitorService(backend, cfg.Store.HealthInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Services added to a layer must be removed from that layer; RemoveDataService
does this for the data layer.

See the services subpackage for the suture.Service implementations.
*/
package supervisor
