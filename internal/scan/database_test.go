package scan

import (
	"errors"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/planoscan/planoscan/internal/extract"
)

var _ = Describe("BoltDB", func() {
	var (
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveScan", func() {
		var (
			scan *Scan
			err  error
		)

		BeforeEach(func() {
			scan = &Scan{
				ID:          "test-id",
				Filename:    "test-id_sheet.jpg",
				ContentType: "image/jpeg",
				RawText:     "CRUNCHY PEANUT BUTTER 12234567890 1234567890123",
				Products: []extract.Product{{
					Name: "CRUNCHY PEANUT BUTTER",
					SKU:  "12234567890",
					UPC:  "1234567890123",
				}},
				Confidence: 1,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveScan(scan)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the scan to the database", func() {
				saved, getErr := db.GetScan("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("test-id"))
			})

			It("should round trip the product records", func() {
				saved, getErr := db.GetScan("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.Products).To(Equal(scan.Products))
			})
		})
	})

	Describe("GetScan", func() {
		var (
			scanID string
			scan   *Scan
			err    error
		)

		JustBeforeEach(func() {
			scan, err = db.GetScan(scanID)
		})

		When("the scan exists", func() {
			BeforeEach(func() {
				scanID = "test-id"
				Expect(db.SaveScan(&Scan{
					ID:         "test-id",
					Filename:   "test-id_sheet.jpg",
					Confidence: 0.8,
					CreatedAt:  time.Now(),
					UpdatedAt:  time.Now(),
				})).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the correct scan", func() {
				Expect(scan.ID).To(Equal("test-id"))
				Expect(scan.Filename).To(Equal("test-id_sheet.jpg"))
				Expect(scan.Confidence).To(Equal(0.8))
			})
		})

		When("the scan does not exist", func() {
			var expectedErr error

			BeforeEach(func() {
				scanID = "nonexistent"
				expectedErr = errors.New("scan not found: nonexistent")
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(expectedErr))
			})
		})
	})

	Describe("ListScans", func() {
		var (
			scans []*Scan
			err   error
		)

		JustBeforeEach(func() {
			scans, err = db.ListScans()
		})

		When("scans exist", func() {
			BeforeEach(func() {
				Expect(db.SaveScan(&Scan{ID: "id1", Filename: "a.jpg"})).NotTo(HaveOccurred())
				Expect(db.SaveScan(&Scan{ID: "id2", Filename: "b.jpg"})).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return all scans", func() {
				Expect(scans).To(HaveLen(2))
			})
		})

		When("no scans exist", func() {
			It("should return an empty list", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(scans).To(BeEmpty())
			})
		})
	})

	Describe("DeleteScan", func() {
		var (
			scanID string
			err    error
		)

		JustBeforeEach(func() {
			err = db.DeleteScan(scanID)
		})

		When("the scan exists", func() {
			BeforeEach(func() {
				scanID = "test-id"
				Expect(db.SaveScan(&Scan{ID: "test-id"})).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the scan from the database", func() {
				_, getErr := db.GetScan("test-id")
				Expect(getErr).To(HaveOccurred())
			})
		})

		When("the scan does not exist", func() {
			BeforeEach(func() {
				scanID = "nonexistent"
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("Close", func() {
		It("should not return an error", func() {
			Expect(db.Close()).NotTo(HaveOccurred())
		})
	})
})
