package classify

import "strconv"

// ServiceNames servicios habituales por puerto
var ServiceNames = map[int]string{
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "dns",
	80:    "http",
	110:   "pop3",
	111:   "rpcbind",
	115:   "sftp",
	135:   "rpc",
	139:   "netbios",
	143:   "imap",
	161:   "snmp",
	194:   "irc",
	389:   "ldap",
	443:   "https",
	445:   "smb",
	1433:  "mssql",
	3306:  "mysql",
	3389:  "rdp",
	5432:  "postgresql",
	5900:  "vnc",
	5984:  "couchdb",
	6379:  "redis",
	8080:  "http-proxy",
	8443:  "https-alt",
	9200:  "elasticsearch",
	27017: "mongodb",
}

// RiskRule regla de riesgo para un puerto abierto
type RiskRule struct {
	Port        int
	Risk        string // critical, high, medium, low
	Description string
}

// RiskRules base de reglas de riesgo
var RiskRules = []RiskRule{
	{Port: 21, Risk: "high", Description: "FTP - Transferencia sin cifrado. Usar SFTP"},
	{Port: 22, Risk: "high", Description: "SSH - Acceso remoto. Usar claves en lugar de contraseñas"},
	{Port: 23, Risk: "critical", Description: "Telnet - Conexión sin cifrado. OBSOLETO y peligroso"},
	{Port: 25, Risk: "medium", Description: "SMTP - Servidor de correo. Validar autenticación"},
	{Port: 53, Risk: "medium", Description: "DNS - Servicio de nombres. Verificar zone transfer"},
	{Port: 111, Risk: "high", Description: "RPC - Remote Procedure Call. Información sensible expuesta"},
	{Port: 139, Risk: "high", Description: "NetBIOS - Compartición de archivos Windows"},
	{Port: 161, Risk: "high", Description: "SNMP - Gestión de red. Default credentials comunes"},
	{Port: 389, Risk: "medium", Description: "LDAP - Directorio. Verificar enumeración de usuarios"},
	{Port: 445, Risk: "high", Description: "SMB - Compartición de archivos. Riesgo de ransomware"},
	{Port: 3306, Risk: "critical", Description: "MySQL - Base de datos expuesta. DEBE estar restringido"},
	{Port: 3389, Risk: "high", Description: "RDP - Acceso remoto Windows. Fuerte objetivo de ataques"},
	{Port: 5432, Risk: "critical", Description: "PostgreSQL - Base de datos expuesta. DEBE estar restringido"},
	{Port: 5984, Risk: "critical", Description: "CouchDB - Base de datos expuesta"},
	{Port: 6379, Risk: "critical", Description: "Redis - Cache sin autenticación. Datos expuestos"},
	{Port: 8080, Risk: "high", Description: "HTTP Proxy - Servicio web alternativo"},
	{Port: 8443, Risk: "medium", Description: "HTTPS alternativo - Verificar certificado SSL"},
	{Port: 9200, Risk: "critical", Description: "Elasticsearch - Búsqueda expuesta. Datos sensibles en riesgo"},
	{Port: 27017, Risk: "critical", Description: "MongoDB - Base de datos sin autenticación por defecto"},
}

// ServiceName nombre de servicio para un puerto, "unknown" si no consta
func ServiceName(port int) string {
	if name, ok := ServiceNames[port]; ok {
		return name
	}
	return "unknown"
}

// RiskForPort riesgo asociado a un puerto abierto, vacío si no hay regla
func RiskForPort(port int) (RiskRule, bool) {
	for _, rule := range RiskRules {
		if rule.Port == port {
			return rule, true
		}
	}
	return RiskRule{}, false
}

// PortFromKey clave de unidad a puerto; 0 si no es numérica
func PortFromKey(key string) int {
	port, err := strconv.Atoi(key)
	if err != nil {
		return 0
	}
	return port
}

// RiskLabel etiqueta legible del nivel de riesgo
func RiskLabel(risk string) string {
	switch risk {
	case "critical":
		return "🔴 CRÍTICO"
	case "high":
		return "🟠 ALTO"
	case "medium":
		return "🟡 MEDIO"
	case "low":
		return "🟢 BAJO"
	default:
		return "⚪ DESCONOCIDO"
	}
}
