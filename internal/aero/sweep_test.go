package aero_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/windtunnel/internal/aero"
)

var _ = Describe("Sweep", func() {
	It("produces 301 samples for the default range", func() {
		res, err := aero.Sweep(aero.DefaultRange, 1.225, 100, 0.3)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Len()).To(Equal(301))
		Expect(res.Velocities[0]).To(Equal(0.0))
		Expect(res.Velocities[300]).To(Equal(30.0))
	})

	It("spaces samples evenly", func() {
		res, err := aero.Sweep(aero.DefaultRange, 1.225, 100, 0.3)
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < res.Len(); i++ {
			Expect(res.Velocities[i] - res.Velocities[i-1]).To(BeNumerically("~", 0.1, 1e-9))
		}
	})

	It("evaluates the formulas per sample", func() {
		res, err := aero.Sweep(aero.Range{Start: 10, End: 20, Step: 5}, 1.225, 50, 0.3)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Velocities).To(Equal([]float64{10, 15, 20}))
		for i, v := range res.Velocities {
			Expect(res.DragForces[i]).To(BeNumerically("~", aero.Drag(1.225, v, 50, 0.3), 1e-9))
			Expect(res.Powers[i]).To(BeNumerically("~", res.DragForces[i]*v, 1e-9))
		}
	})

	It("stops before end when the step does not divide the range", func() {
		vs := aero.Range{Start: 0, End: 1, Step: 0.3}.Velocities()
		Expect(vs).To(HaveLen(4))
		Expect(vs[3]).To(BeNumerically("~", 0.9, 1e-12))
	})

	DescribeTable("rejects invalid ranges",
		func(r aero.Range) {
			_, err := aero.Sweep(r, 1.225, 1, 0.3)
			Expect(errors.Is(err, aero.ErrInvalidRange)).To(BeTrue())
		},
		Entry("zero step", aero.Range{Start: 0, End: 10, Step: 0}),
		Entry("negative step", aero.Range{Start: 0, End: 10, Step: -1}),
		Entry("start equals end", aero.Range{Start: 5, End: 5, Step: 1}),
		Entry("start after end", aero.Range{Start: 10, End: 5, Step: 1}),
		Entry("NaN end", aero.Range{Start: 0, End: math.NaN(), Step: 1}),
		Entry("infinite end", aero.Range{Start: 0, End: math.Inf(1), Step: 1}),
	)

	It("rejects oversized sweeps", func() {
		_, err := aero.Sweep(aero.Range{Start: 0, End: 1e9, Step: 1}, 1.225, 1, 0.3)
		Expect(errors.Is(err, aero.ErrTooManySamples)).To(BeTrue())
	})
})
