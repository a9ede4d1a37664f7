package extract

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewEngine", func() {
	var (
		cfg    Config
		engine *Engine
		err    error
	)

	BeforeEach(func() {
		cfg = DefaultConfig()
	})

	JustBeforeEach(func() {
		engine, err = NewEngine(cfg)
	})

	When("using the default configuration", func() {
		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(engine).NotTo(BeNil())
		})
	})

	When("the SKU digit range is inverted", func() {
		BeforeEach(func() {
			cfg.SKUMinDigits = 13
			cfg.SKUMaxDigits = 11
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("sku digit range"))
		})
	})

	When("no SKU prefixes are configured", func() {
		BeforeEach(func() {
			cfg.SKUPrefixes = nil
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	When("a SKU prefix is not numeric", func() {
		BeforeEach(func() {
			cfg.SKUPrefixes = []string{"12A"}
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	When("the record cap is zero", func() {
		BeforeEach(func() {
			cfg.MaxRecords = 0
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	When("the caller mutates the config afterwards", func() {
		BeforeEach(func() {
			cfg.SKUPrefixes = []string{"122"}
		})

		It("should not affect the engine", func() {
			Expect(err).NotTo(HaveOccurred())
			cfg.SKUPrefixes[0] = "999"
			Expect(engine.Classify("12234567890").Kind).To(Equal(KindSKUOnly))
		})
	})
})

var _ = Describe("LoadConfig", func() {
	var (
		path string
		cfg  Config
		err  error
	)

	JustBeforeEach(func() {
		cfg, err = LoadConfig(path)
	})

	When("the file overrides a subset of fields", func() {
		BeforeEach(func() {
			path = filepath.Join(GinkgoT().TempDir(), "patterns.yaml")
			content := []byte("sku_prefixes: [\"500\", \"501\"]\nmax_records: 20\n")
			Expect(os.WriteFile(path, content, 0o644)).To(Succeed())
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should apply the overrides", func() {
			Expect(cfg.SKUPrefixes).To(Equal([]string{"500", "501"}))
			Expect(cfg.MaxRecords).To(Equal(20))
		})

		It("should keep defaults for the rest", func() {
			Expect(cfg.UPCMinDigits).To(Equal(12))
			Expect(cfg.SkipWords).To(ContainElement("SHELF"))
		})
	})

	When("the file does not exist", func() {
		BeforeEach(func() {
			path = filepath.Join(GinkgoT().TempDir(), "missing.yaml")
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	When("the file is not valid YAML", func() {
		BeforeEach(func() {
			path = filepath.Join(GinkgoT().TempDir(), "patterns.yaml")
			Expect(os.WriteFile(path, []byte("sku_prefixes: ["), 0o644)).To(Succeed())
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})
