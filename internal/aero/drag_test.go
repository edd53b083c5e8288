package aero_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/windtunnel/internal/aero"
)

var _ = Describe("Drag", func() {
	It("matches the reference car example", func() {
		d := aero.Drag(1.225, 20, 30, 0.3)
		Expect(d).To(BeNumerically("~", 2205.0, 1e-9))
		Expect(aero.Power(d, 20)).To(BeNumerically("~", 44100.0, 1e-9))
	})

	It("gives 3675 N for a 50 m² body at 20 m/s", func() {
		d := aero.Drag(1.225, 20, 50, 0.3)
		Expect(d).To(BeNumerically("~", 3675.0, 1e-9))
		Expect(aero.Power(d, 20)).To(BeNumerically("~", 73500.0, 1e-9))
	})

	DescribeTable("follows 0.5*rho*v^2*A*Cd",
		func(rho, v, a, cd float64) {
			Expect(aero.Drag(rho, v, a, cd)).To(BeNumerically("~", 0.5*rho*v*v*a*cd, 1e-9))
		},
		Entry("zero velocity", 1.225, 0.0, 2.0, 0.3),
		Entry("zero area", 1.225, 30.0, 0.0, 0.3),
		Entry("water", 997.0, 2.5, 0.8, 1.1),
		Entry("thin air", 0.4, 250.0, 12.0, 0.02),
	)

	It("scales quadratically with velocity", func() {
		Expect(aero.Drag(1.2, 20, 1, 1)).To(BeNumerically("~", 4*aero.Drag(1.2, 10, 1, 1), 1e-9))
	})

	It("computes power as drag times velocity", func() {
		Expect(aero.Power(120.5, 12)).To(Equal(120.5 * 12))
	})
})

var _ = Describe("FrontalArea", func() {
	It("uses the y and z extents", func() {
		Expect(aero.FrontalArea(aero.Bounds{-1, 3, -2, 2, 0, 1.5})).To(BeNumerically("~", 6.0, 1e-12))
	})

	It("is 100 for the reference body", func() {
		Expect(aero.FrontalArea(aero.ReferenceBounds)).To(Equal(100.0))
	})

	It("is zero for an empty box", func() {
		Expect(aero.FrontalArea(aero.Bounds{})).To(BeZero())
	})
})

var _ = Describe("Reynolds", func() {
	It("returns rho*v*L/mu", func() {
		Expect(aero.Reynolds(1.225, 20, 4.5, 1.8e-5)).To(BeNumerically("~", 6.125e6, 1))
	})

	It("returns 0 for zero viscosity", func() {
		Expect(aero.Reynolds(1.225, 20, 4.5, 0)).To(BeZero())
	})
})

var _ = Describe("Evaluate", func() {
	It("fills every field", func() {
		r := aero.Evaluate(1.225, 20, 30, 0.3)
		Expect(r.Velocity).To(Equal(20.0))
		Expect(r.FrontalArea).To(Equal(30.0))
		Expect(r.DragForce).To(BeNumerically("~", 2205.0, 1e-9))
		Expect(r.Power).To(BeNumerically("~", 44100.0, 1e-9))
	})
})
