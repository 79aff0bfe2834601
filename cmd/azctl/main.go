// Command azctl wraps the Azure CLI for the handful of operations the
// team runs constantly: listing subscriptions and resources, fetching
// API keys, and provisioning the usual resource types. It shells out to
// az, decodes the JSON it returns, and prints compact reports.
//
// azctl requires the az executable on PATH and an authenticated session
// (or run `azctl login` first).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/entrhq/cloudtools/pkg/azure"
	"github.com/entrhq/cloudtools/pkg/config"
	"github.com/entrhq/cloudtools/pkg/dispatch"
	"github.com/entrhq/cloudtools/pkg/logging"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Config file path (default ~/.cloudtools/config.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("azctl v%s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.Default()
	}

	logger, _ := logging.New("azctl")
	defer logger.Close()

	runner := &azure.Runner{Binary: cfg.Azure.Binary, Timeout: cfg.AzureTimeout()}
	client := azure.NewClient(runner, azure.NewFormatter(os.Stdout), logger)
	table := commandTable(client)

	args := flag.Args()
	if len(args) == 0 {
		dispatch.PrintUsage(table, "azctl", os.Stdout)
		return
	}

	logger.Infof("dispatching %q", args[0])
	if err := dispatch.Dispatch(table, args[0], args[1:], os.Stdout); err != nil {
		// The formatter already printed the failure; record it and keep
		// the zero exit status.
		logger.Errorf("command %s failed: %v", args[0], err)
	}
}

// optional returns args[i] or fallback when the argument was omitted.
func optional(args []string, i int, fallback string) string {
	if i < len(args) {
		return args[i]
	}
	return fallback
}

func commandTable(client *azure.Client) dispatch.Table {
	ctx := context.Background()

	return dispatch.Table{
		{
			Name: "login", Usage: "login", MinArgs: 0,
			Run: func(args []string) error {
				_, err := client.Login(ctx)
				return err
			},
		},
		{
			Name: "account", Usage: "account", MinArgs: 0,
			Run: func(args []string) error {
				_, err := client.AccountInfo(ctx)
				return err
			},
		},
		{
			Name: "list_subscriptions", Usage: "list_subscriptions", MinArgs: 0,
			Run: func(args []string) error {
				_, err := client.ListSubscriptions(ctx)
				return err
			},
		},
		{
			Name: "set_subscription", Usage: "set_subscription <subscription_id>", MinArgs: 1,
			Run: func(args []string) error {
				return client.SetSubscription(ctx, args[0])
			},
		},
		{
			Name: "list_groups", Usage: "list_groups", MinArgs: 0,
			Run: func(args []string) error {
				_, err := client.ListGroups(ctx)
				return err
			},
		},
		{
			Name: "list_resources", Usage: "list_resources [group]", MinArgs: 0,
			Run: func(args []string) error {
				_, err := client.ListResources(ctx, optional(args, 0, ""))
				return err
			},
		},
		{
			Name: "get_keys", Usage: "get_keys <type> <name> <group>", MinArgs: 3,
			Run: func(args []string) error {
				return client.GetKeys(ctx, args[0], args[1], args[2])
			},
		},
		{
			Name: "create_resource_group", Usage: "create_resource_group <name> [location]", MinArgs: 1,
			Run: func(args []string) error {
				return client.CreateResourceGroup(ctx, args[0], optional(args, 1, ""))
			},
		},
		{
			Name: "create_cognitive", Usage: "create_cognitive <name> <group> [kind]", MinArgs: 2,
			Run: func(args []string) error {
				return client.CreateCognitive(ctx, args[0], args[1], optional(args, 2, ""))
			},
		},
		{
			Name: "create_storage", Usage: "create_storage <name> <group>", MinArgs: 2,
			Run: func(args []string) error {
				return client.CreateStorage(ctx, args[0], args[1])
			},
		},
		{
			Name: "create_openai", Usage: "create_openai <name> <group>", MinArgs: 2,
			Run: func(args []string) error {
				return client.CreateOpenAI(ctx, args[0], args[1])
			},
		},
		{
			Name: "list_deployments", Usage: "list_deployments <name> <group>", MinArgs: 2,
			Run: func(args []string) error {
				_, err := client.ListDeployments(ctx, args[0], args[1])
				return err
			},
		},
		{
			Name: "create_deployment", Usage: "create_deployment <name> <group> <deployment> [model] [version]", MinArgs: 3,
			Run: func(args []string) error {
				return client.CreateDeployment(ctx, args[0], args[1], args[2],
					optional(args, 3, ""), optional(args, 4, ""))
			},
		},
	}
}
