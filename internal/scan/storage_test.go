package scan

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		basePath string
		storage  *LocalStorage
	)

	BeforeEach(func() {
		basePath = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(basePath)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		var (
			savedName string
			err       error
		)

		JustBeforeEach(func() {
			savedName, err = storage.Save("test-id_sheet.jpg", []byte("image data"))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the stored name", func() {
			Expect(savedName).To(Equal("test-id_sheet.jpg"))
		})

		It("should write the file to disk", func() {
			Expect(filepath.Join(basePath, "test-id_sheet.jpg")).To(BeAnExistingFile())
		})

		It("should write the correct content", func() {
			content, readErr := os.ReadFile(filepath.Join(basePath, savedName))
			Expect(readErr).NotTo(HaveOccurred())
			Expect(content).To(Equal([]byte("image data")))
		})
	})

	Describe("Get", func() {
		var (
			data []byte
			err  error
		)

		When("the file exists", func() {
			BeforeEach(func() {
				_, saveErr := storage.Save("test-id_sheet.jpg", []byte("image data"))
				Expect(saveErr).NotTo(HaveOccurred())
			})

			JustBeforeEach(func() {
				data, err = storage.Get("test-id_sheet.jpg")
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the file content", func() {
				Expect(data).To(Equal([]byte("image data")))
			})
		})

		When("the file does not exist", func() {
			JustBeforeEach(func() {
				data, err = storage.Get("missing.jpg")
			})

			It("returns the error", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("reading file"))
			})
		})
	})

	Describe("Delete", func() {
		var err error

		When("the file exists", func() {
			BeforeEach(func() {
				_, saveErr := storage.Save("test-id_sheet.jpg", []byte("image data"))
				Expect(saveErr).NotTo(HaveOccurred())
			})

			JustBeforeEach(func() {
				err = storage.Delete("test-id_sheet.jpg")
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the file from disk", func() {
				Expect(filepath.Join(basePath, "test-id_sheet.jpg")).NotTo(BeAnExistingFile())
			})
		})

		When("the file does not exist", func() {
			JustBeforeEach(func() {
				err = storage.Delete("missing.jpg")
			})

			It("returns the error", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("deleting file"))
			})
		})
	})

	Describe("path handling", func() {
		It("should flatten directory components out of names", func() {
			savedName, err := storage.Save(filepath.Join("..", "escape.jpg"), []byte("image data"))
			Expect(err).NotTo(HaveOccurred())
			Expect(savedName).To(Equal("escape.jpg"))

			Expect(filepath.Join(basePath, "escape.jpg")).To(BeAnExistingFile())
			Expect(filepath.Join(basePath, "..", "escape.jpg")).NotTo(BeAnExistingFile())

			data, err := storage.Get(filepath.Join("..", "escape.jpg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("image data")))
		})
	})
})

var _ = Describe("NewLocalStorage", func() {
	When("the directory does not exist", func() {
		It("should create it", func() {
			basePath := filepath.Join(GinkgoT().TempDir(), "nested", "sheets")
			storage, err := NewLocalStorage(basePath)
			Expect(err).NotTo(HaveOccurred())
			Expect(basePath).To(BeADirectory())

			_, saveErr := storage.Save("test.jpg", []byte("data"))
			Expect(saveErr).NotTo(HaveOccurred())
		})
	})

	When("the directory already exists", func() {
		It("should not return an error", func() {
			storage, err := NewLocalStorage(GinkgoT().TempDir())
			Expect(err).NotTo(HaveOccurred())

			_, saveErr := storage.Save("test.jpg", []byte("data"))
			Expect(saveErr).NotTo(HaveOccurred())
		})
	})
})
