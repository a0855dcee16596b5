package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Argmax", func() {
	It("should pick the unique maximum", func() {
		Expect(Argmax([]int32{-3, 5, 2, 4})).To(Equal(1))
	})

	It("should break ties toward the lowest index", func() {
		Expect(Argmax([]int32{1, 7, 7, 7})).To(Equal(1))
	})

	It("should pick index 0 when all values are equal", func() {
		Expect(Argmax(make([]int32, 10))).To(Equal(0))
	})

	It("should handle all-negative inputs", func() {
		Expect(Argmax([]int32{-9, -2, -5})).To(Equal(1))
	})

	It("should panic on an empty input", func() {
		Expect(func() { Argmax(nil) }).To(Panic())
	})
})
