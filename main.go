package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"llm_site_deployer/config"
	"llm_site_deployer/deploy"
	"llm_site_deployer/generator"
	"llm_site_deployer/publisher"
	"llm_site_deployer/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	addr := flag.String("addr", "", "http listen address (overrides PORT)")
	mockLLM := flag.Bool("mock-llm", false, "use the built-in mock model instead of a real API")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	llm, err := buildLLM(cfg, *mockLLM)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	host, err := publisher.New(ctx, publisher.Config{Token: cfg.GitHubToken}, nil, true, log.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Printf("publishing as github user %s", host.Owner())

	notifier := deploy.NewNotifier(cfg.PagesWarmup, cfg.NotifyAttempts, nil, log.Default())
	deployer, err := deploy.New(agent, host, notifier, log.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	srv, err := server.New(deployer, cfg.AppSecret, log.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := ":" + cfg.Port
	if *addr != "" {
		listen = *addr
	}
	log.Printf("starting deployment server on %s (llm provider %s, model %s)", listen, cfg.LLM.Provider, cfg.LLM.Model)
	if err := srv.Routes().Run(listen); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLLM(cfg config.Config, mock bool) (generator.LLMClient, error) {
	if mock {
		return generator.MockLLM{}, nil
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible interface; base URL is
		// enforced at config load.
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
