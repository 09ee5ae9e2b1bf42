package arbiter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/roboviz/internal/arbiter"
	"github.com/san-kum/roboviz/internal/world"
)

func stateAt(x float64) world.SimulationState {
	return world.SimulationState{
		Pose:  world.Pose{X: x, Y: 100},
		World: world.Extent{Width: 640, Height: 480, WallMargin: 20},
	}
}

var _ = Describe("Context", func() {
	var ctx *arbiter.Context

	BeforeEach(func() {
		ctx = arbiter.NewContext("arena_basic")
	})

	Describe("precedence", func() {
		It("falls back to local physics when no source has data", func() {
			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceLocal))
		})

		It("prefers preview over local once preview data arrives", func() {
			ctx.SetPreview(stateAt(10))
			st, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourcePreview))
			Expect(st.Pose.X).To(Equal(10.0))
		})

		It("prefers training over preview while training is active", func() {
			ctx.SetPreview(stateAt(10))
			ctx.SetTrainingActive(true)
			ctx.SetTraining(stateAt(20))
			ctx.SetPreview(stateAt(30))

			st, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceTraining))
			Expect(st.Pose.X).To(Equal(20.0))
		})

		It("lets test playback dominate every other source", func() {
			ctx.SetTrainingActive(true)
			ctx.SetTraining(stateAt(20))
			ctx.SetTestMode(true)
			ctx.SetTestFrame(stateAt(40))
			ctx.SetTraining(stateAt(21))
			ctx.SetPreview(stateAt(31))

			st, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceTest))
			Expect(st.Pose.X).To(Equal(40.0))
		})
	})

	Describe("preview guard during training", func() {
		It("drops preview writes while training data is authoritative", func() {
			ctx.SetTrainingActive(true)
			ctx.SetTraining(stateAt(20))
			ctx.SetPreview(stateAt(99))

			ctx.ClearTraining()
			ctx.SetTrainingActive(false)

			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceLocal),
				"the racing preview frame must not have been cached")
		})

		It("still accepts preview before the first training frame lands", func() {
			ctx.SetTrainingActive(true)
			ctx.SetPreview(stateAt(50))

			ctx.SetTrainingActive(false)
			st, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourcePreview))
			Expect(st.Pose.X).To(Equal(50.0))
		})

		It("keeps painting the preview while training is pending", func() {
			ctx.SetTrainingActive(true)
			ctx.SetPreview(stateAt(60))

			st, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourcePreview))
			Expect(st.Pose.X).To(Equal(60.0))
		})
	})

	Describe("hold", func() {
		It("holds the last drawn frame when training is pending and the preview drops", func() {
			ctx.SetPreview(stateAt(10))
			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourcePreview))

			ctx.SetTrainingActive(true)
			ctx.ClearPreview()

			st, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceHold))
			Expect(st.Pose.X).To(Equal(10.0))
		})

		It("promotes to training once the stream produces", func() {
			ctx.SetPreview(stateAt(10))
			ctx.Authoritative()
			ctx.SetTrainingActive(true)
			ctx.SetTraining(stateAt(20))

			st, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceTraining))
			Expect(st.Pose.X).To(Equal(20.0))
		})

		It("runs local physics when training is pending with nothing to hold", func() {
			ctx.SetTrainingActive(true)
			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceLocal))
		})
	})

	Describe("transitions", func() {
		It("clears cached state and telemetry on profile change", func() {
			ctx.SetPreview(stateAt(10))
			ctx.SetTelemetry(arbiter.Telemetry{Episode: 4, Reward: 2.5})
			ctx.Authoritative()

			ctx.SetProfile("warehouse_dense")

			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceLocal),
				"stale geometry from the previous profile must never be drawn")
			Expect(ctx.Telemetry()).To(Equal(arbiter.Telemetry{}))
			Expect(ctx.Profile()).To(Equal("warehouse_dense"))
		})

		It("ignores a redundant profile set", func() {
			ctx.SetPreview(stateAt(10))
			ctx.SetProfile("arena_basic")

			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourcePreview))
		})

		It("clears backend state when leaving test mode", func() {
			ctx.SetTestMode(true)
			ctx.SetTestFrame(stateAt(40))
			ctx.Authoritative()

			ctx.SetTestMode(false)

			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceLocal))
		})

		It("drops stream writes while in test mode", func() {
			ctx.SetTestMode(true)
			ctx.SetTraining(stateAt(20))
			ctx.SetPreview(stateAt(30))
			ctx.SetTestMode(false)

			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceLocal))
		})

		It("demotes a source when its connection drops", func() {
			ctx.SetPreview(stateAt(10))
			ctx.ClearPreview()

			_, src := ctx.Authoritative()
			Expect(src).To(Equal(arbiter.SourceLocal))
		})
	})

	Describe("latest wins", func() {
		It("renders only the newest frame from a burst", func() {
			for i := 0; i < 5; i++ {
				ctx.SetPreview(stateAt(float64(i)))
			}
			st, _ := ctx.Authoritative()
			Expect(st.Pose.X).To(Equal(4.0))
		})
	})
})
