package ocr

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("prepareImage", func() {
	var (
		data        []byte
		contentType string
		out         []byte
		err         error
	)

	JustBeforeEach(func() {
		out, err = prepareImage(data, contentType)
	})

	When("the upload is already a small PNG", func() {
		BeforeEach(func() {
			data = testPNG()
			contentType = "image/png"
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep the dimensions", func() {
			img, ferr := png.Decode(bytes.NewReader(out))
			Expect(ferr).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(Equal(10))
			Expect(img.Bounds().Dy()).To(Equal(10))
		})
	})

	When("the upload is a JPEG without a content type", func() {
		BeforeEach(func() {
			var buf bytes.Buffer
			Expect(jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil)).To(Succeed())
			data = buf.Bytes()
			contentType = ""
		})

		It("should decode it and return PNG", func() {
			Expect(err).NotTo(HaveOccurred())
			_, derr := png.Decode(bytes.NewReader(out))
			Expect(derr).NotTo(HaveOccurred())
		})
	})

	When("the content type has odd casing and whitespace", func() {
		BeforeEach(func() {
			data = testPNG()
			contentType = "  IMAGE/PNG "
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})
	})

	When("the upload is not an image", func() {
		BeforeEach(func() {
			data = []byte("not an image at all")
			contentType = "image/png"
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unsupported image format"))
		})
	})
})

var _ = Describe("downscale", func() {
	It("should leave small images alone", func() {
		img := image.NewRGBA(image.Rect(0, 0, 2048, 1000))
		got := downscale(img)
		Expect(got.Bounds().Dx()).To(Equal(2048))
		Expect(got.Bounds().Dy()).To(Equal(1000))
	})

	It("should shrink the long edge to the cap", func() {
		img := image.NewRGBA(image.Rect(0, 0, 4096, 1024))
		got := downscale(img)
		Expect(got.Bounds().Dx()).To(Equal(2048))
		Expect(got.Bounds().Dy()).To(Equal(512))
	})

	It("should keep extreme aspect ratios proportional", func() {
		img := image.NewRGBA(image.Rect(0, 0, 3000, 100))
		got := downscale(img)
		Expect(got.Bounds().Dx()).To(Equal(2048))
		Expect(got.Bounds().Dy()).To(Equal(68))
	})

	It("should scale portrait images by their height", func() {
		img := image.NewRGBA(image.Rect(0, 0, 1024, 4096))
		got := downscale(img)
		Expect(got.Bounds().Dx()).To(Equal(512))
		Expect(got.Bounds().Dy()).To(Equal(2048))
	})
})

var _ = Describe("isHEIC", func() {
	heicHeader := func(brand string) []byte {
		data := []byte{0, 0, 0, 24}
		data = append(data, []byte("ftyp")...)
		data = append(data, []byte(brand)...)
		return data
	}

	It("should detect the common phone brands", func() {
		for _, brand := range []string{"heic", "heif", "mif1", "msf1"} {
			Expect(isHEIC(heicHeader(brand))).To(BeTrue())
		}
	})

	It("should reject other ftyp brands", func() {
		Expect(isHEIC(heicHeader("avif"))).To(BeFalse())
	})

	It("should reject short payloads", func() {
		Expect(isHEIC([]byte("ftyp"))).To(BeFalse())
	})

	It("should reject payloads without an ftyp box", func() {
		Expect(isHEIC([]byte("0123456789abcdef"))).To(BeFalse())
	})
})

var _ = Describe("isHEICMimeType", func() {
	It("should match heic and heif types", func() {
		Expect(isHEICMimeType("image/heic")).To(BeTrue())
		Expect(isHEICMimeType(" IMAGE/HEIF ")).To(BeTrue())
	})

	It("should not match other image types", func() {
		Expect(isHEICMimeType("image/png")).To(BeFalse())
	})
})
