package main

import (
	"flag"
	"log"

	"postcheck-engine/internal/config"
)

func initConfigCmd(args []string) error {
	fs := flag.NewFlagSet("init-config", flag.ContinueOnError)
	path := fs.String("path", "postcheck.yml", "where to write the default config")
	force := fs.Bool("force", false, "overwrite an existing file (the old one is kept as .bak)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *force {
		if err := config.SaveAtomic(*path, config.Default()); err != nil {
			return err
		}
		log.Printf("[config] wrote defaults path=%s", *path)
		return nil
	}

	created, err := config.EnsureUserConfig(*path)
	if err != nil {
		return err
	}
	if created {
		log.Printf("[config] wrote defaults path=%s", *path)
	} else {
		log.Printf("[config] exists, left untouched path=%s (use -force to overwrite)", *path)
	}
	return nil
}
