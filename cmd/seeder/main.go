package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/storage/badger"
)

// seedTopic mirrors the JSON shape of a seed file entry.
type seedTopic struct {
	Sector         string `json:"sector"`
	Content        string `json:"content"`
	FurtherReading string `json:"further_reading"`
}

var defaultTopics = []seedTopic{
	{Sector: "classical mechanics", Content: "Newton's three laws of motion describe the relationship between a body and the forces acting upon it. Momentum is conserved in closed systems.", FurtherReading: "https://en.wikipedia.org/wiki/Classical_mechanics"},
	{Sector: "thermodynamics", Content: "Energy cannot be created or destroyed. Entropy of an isolated system never decreases. Heat flows from hot to cold bodies.", FurtherReading: "https://en.wikipedia.org/wiki/Thermodynamics"},
	{Sector: "organic chemistry", Content: "Carbon forms four covalent bonds, enabling chains, rings, and functional groups that define reactivity.", FurtherReading: "https://en.wikipedia.org/wiki/Organic_chemistry"},
	{Sector: "cell biology", Content: "Cells are the basic unit of life. Eukaryotic cells contain membrane-bound organelles including the nucleus and mitochondria.", FurtherReading: "https://en.wikipedia.org/wiki/Cell_biology"},
	{Sector: "linear algebra", Content: "Vector spaces, linear transformations, and matrices. Eigenvalues and eigenvectors characterize how transformations stretch space.", FurtherReading: "https://en.wikipedia.org/wiki/Linear_algebra"},
	{Sector: "roman history", Content: "From the founding of the Republic in 509 BC through the fall of the Western Empire in 476 AD. Institutions, expansion, and decline.", FurtherReading: "https://en.wikipedia.org/wiki/Ancient_Rome"},
	{Sector: "macroeconomics", Content: "Aggregate output, inflation, and unemployment. Fiscal and monetary policy as levers on aggregate demand.", FurtherReading: "https://en.wikipedia.org/wiki/Macroeconomics"},
	{Sector: "quantum computing", Content: "Qubits exploit superposition and entanglement. Quantum gates are unitary operations; measurement collapses state.", FurtherReading: "https://en.wikipedia.org/wiki/Quantum_computing"},
}

var (
	seedFileName = flag.String("src", "", "JSON file of seed topics")
	dbPath       = flag.String("db", "./studyhall_db", "path to BadgerDB database directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// topicsFromFile loads seed topics from a JSON array file.
func topicsFromFile(filename string) ([]seedTopic, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var topics []seedTopic
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func main() {
	backend, err := badger.OpenBackend(*dbPath, false)
	if err != nil {
		panic(err)
	}
	defer backend.Close()

	repo, err := badger.NewTopicRepository(backend)
	if err != nil {
		panic(err)
	}
	defer repo.Close()

	topics := defaultTopics
	if *seedFileName != "" {
		topics, err = topicsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	}

	ctx := context.Background()
	now := time.Now().UTC()

	for _, t := range topics {
		stored, err := repo.UpsertTopic(ctx, &core.Topic{
			Sector:         t.Sector,
			Content:        t.Content,
			FurtherReading: t.FurtherReading,
			LastUpdate:     now,
		})
		if err != nil {
			slog.Error("failed to seed topic", "sector", t.Sector, "err", err)
			continue
		}
		slog.Info("seeded topic", "sector", stored.Sector, "id", stored.Id)
	}
}
