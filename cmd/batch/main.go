package main

import (
	"context"
	"flag"
	"log"

	"smartcart/internal/catalog"
	"smartcart/internal/comatrix"
	"smartcart/internal/evaluate"
	"smartcart/internal/ingest"
	"smartcart/internal/recommend"

	"github.com/joho/godotenv"
)

// Offline batch evaluation: order CSV + labeled test CSV in, scored output
// table + aggregate metrics out. Runs without a database or object storage.
func main() {
	_ = godotenv.Load()

	ordersPath := flag.String("orders", "data/order_data.csv", "order dataset CSV")
	orderColumn := flag.String("order-column", ingest.DefaultOrderColumn, "order items column")
	testPath := flag.String("test", "data/test_data_question.csv", "labeled test dataset CSV")
	outPath := flag.String("out", "artifacts/recommendation_output.csv", "output table CSV")
	rulesPath := flag.String("rules", "", "optional YAML rules override")
	configPath := flag.String("config", "", "optional YAML engine config")
	sampleN := flag.Int("sample", 0, "max orders to sample (0 = all)")
	seed := flag.Int64("seed", comatrix.DefaultSeed, "sampling seed")
	flag.Parse()

	rules := catalog.DefaultRules()
	if *rulesPath != "" {
		var err error
		rules, err = catalog.LoadRules(*rulesPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	engineCfg := recommend.DefaultEngineConfig()
	if *configPath != "" {
		var err error
		engineCfg, err = recommend.LoadEngineConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("Loading orders from %s ...", *ordersPath)
	orders, err := ingest.LoadOrders(*ordersPath, *orderColumn)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Loaded %d orders", len(orders))

	service := recommend.NewService(rules, engineCfg, nil, nil)
	model, err := service.Build(context.Background(), orders, comatrix.BuildOptions{
		SampleN: *sampleN,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Built snapshot %s: %d items", model.SnapshotID, model.Catalog.Len())

	rows, err := ingest.LoadTestRows(*testPath, ingest.DefaultCartColumn, ingest.DefaultTruthColumn)
	if err != nil {
		log.Fatal(err)
	}

	report := evaluate.Evaluate(model, rows)
	if err := evaluate.SaveCSV(*outPath, report); err != nil {
		log.Fatal(err)
	}

	log.Printf("Wrote %d rows to %s", report.RowCount, *outPath)
	log.Printf("Recall@3:       %.4f", report.Recall3)
	log.Printf("Precision@3:    %.4f", report.Precision3)
	log.Printf("Top-1 accuracy: %.4f", report.Top1)
	if report.EmptyCarts > 0 {
		log.Printf("⚠️  %d rows had no resolvable cart items", report.EmptyCarts)
	}
}
