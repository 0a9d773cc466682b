package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/annel0/playerheads/internal/config"
	"github.com/annel0/playerheads/internal/logging"
	"github.com/annel0/playerheads/internal/packgen"
)

func main() {
	var (
		root       = flag.String("root", ".", "Directory holding <NS>_BP and <NS>_RP")
		ns         = flag.String("ns", "", "Namespace (default: from config)")
		configPath = flag.String("config", "", "Path to YAML config (default: $HEADS_CONFIG)")
		names      = flag.String("name", "", "Head names (comma-separated), e.g. Steve,Alex")
		sound      = flag.String("sound", "", "Sound file under sounds/skulls (empty: head.default)")
		model      = flag.String("model", "", "Geometry name without 'geometry.' (empty: head)")
		manifest   = flag.String("manifest", "", "Write fresh manifests with this pack name")
		bundle     = flag.String("bundle", "", "Zip both packs into this .mcaddon file")
		verbose    = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	logging.SetLogDir("")
	if *verbose {
		logging.GetLoggerManager().SetLevel(logging.DEBUG)
	}
	logger := logging.GetPackLogger()

	namespace := cfg.Namespace
	if *ns != "" {
		namespace = *ns
	}
	gen := packgen.NewGenerator(*root, namespace, logger)
	if cfg.HeadsFile != "" {
		gen.HeadsFile = cfg.HeadsFile
		if !filepath.IsAbs(gen.HeadsFile) {
			gen.HeadsFile = filepath.Join(*root, gen.HeadsFile)
		}
	}

	for _, name := range parseStringList(*names) {
		if _, err := gen.AddHead(packgen.HeadSpec{Name: name, Sound: *sound, Model: *model}); err != nil {
			log.Fatalf("❌ Не удалось добавить голову %s: %v", name, err)
		}
	}

	if *manifest != "" {
		bp, rp, err := gen.WriteManifests(*manifest, "Custom player heads")
		if err != nil {
			log.Fatalf("❌ Ошибка записи манифестов: %v", err)
		}
		logger.Info("📝 Манифесты записаны: BP %s, RP %s", bp.Header.UUID, rp.Header.UUID)
	}

	if *bundle != "" {
		n, err := packgen.Bundle(*bundle, gen.BehaviorDir, gen.ResourceDir)
		if err != nil {
			log.Fatalf("❌ Ошибка упаковки: %v", err)
		}
		logger.Info("📦 %s: %d файлов", *bundle, n)
	}
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
