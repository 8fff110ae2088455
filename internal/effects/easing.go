package effects

import "fmt"

// EasingExpr returns the ffmpeg arithmetic expression for an easing
// function e(t) in [0,1], parametrized over the given time and duration
// variables (e.g. "t"/"3.5" for wall time, "on"/"210" for zoompan frames).
func EasingExpr(kind, t, duration string) string {
	switch kind {
	case "linear":
		return fmt.Sprintf("%s/%s", t, duration)
	case "ease-in":
		return fmt.Sprintf("pow(%s/%s,2)", t, duration)
	case "ease-out":
		return fmt.Sprintf("(1 - pow(1-%s/%s,2))", t, duration)
	case "ease-in-out":
		return fmt.Sprintf("if(lt(%s,%s/2), 2*pow(%s/%s,2), 1-2*pow(1-%s/%s,2))",
			t, duration, t, duration, t, duration)
	case "bounce":
		return fmt.Sprintf("if(lt(%s,%s/2), 2*pow(%s/%s,2), 1-2*pow(1-%s/%s,2))*abs(sin(10*%s/%s))",
			t, duration, t, duration, t, duration, t, duration)
	case "elastic":
		return fmt.Sprintf("1-cos(20*%s/%s)*exp(-5*%s/%s)", t, duration, t, duration)
	case "back":
		return fmt.Sprintf("pow(%s/%s,2)*(2.70158*(%s/%s)-1.70158)", t, duration, t, duration)
	default: // "ease"
		return fmt.Sprintf("(3*pow(%s/%s,2) - 2*pow(%s/%s,3))", t, duration, t, duration)
	}
}
