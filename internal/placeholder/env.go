package placeholder

import "regexp"

// envRef matches %NAME% and ${NAME}.
var envRef = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%|\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv replaces %NAME% and ${NAME} references with the variable's value.
// References to unset variables are left exactly as written, closing '%'
// included, so with only B set "%A%B%" stays "%A%B%". Windows shells reuse
// that '%' and would produce "%A" followed by the value of B.
func ExpandEnv(s string, lookupEnv EnvFunc) string {
	if lookupEnv == nil {
		return s
	}
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if v, ok := lookupEnv(name); ok {
			return v
		}
		return ref
	})
}
