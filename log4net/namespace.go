package log4net

// XmlNamespace is the prefix and URI used to qualify every element.
type XmlNamespace struct {
	Prefix string
	URI    string
}

var (
	// Log4NetNamespace is the default namespace.
	Log4NetNamespace = XmlNamespace{Prefix: "log4net", URI: "http://logging.apache.org/log4net/schemas/log4net-events-1.2/"}

	// Log4JNamespace is the namespace used in log4j compatibility mode.
	Log4JNamespace = XmlNamespace{Prefix: "log4j", URI: "http://jakarta.apache.org/log4j/"}
)
