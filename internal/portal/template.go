package portal

import (
	"html/template"
	"io"
	"log"

	"github.com/sentinel/sentinel-display/internal/state"
	"github.com/sentinel/sentinel-display/internal/wifi"
)

var rootTmpl = template.Must(template.New("root").Parse(`<!DOCTYPE html>
<html>
<head>
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sentinel Setup</title>
<style>
body { font-family: sans-serif; margin: 0; background: #f2f2f2; }
.card { max-width: 420px; margin: 2em auto; background: #fff; border-radius: 8px;
        padding: 1.5em; box-shadow: 0 1px 4px rgba(0,0,0,.2); }
h1 { font-size: 1.3em; margin-top: 0; }
label { display: block; margin: .8em 0 .2em; font-size: .9em; color: #444; }
input { width: 100%; padding: .5em; box-sizing: border-box; border: 1px solid #ccc;
        border-radius: 4px; }
button { margin-top: 1.2em; width: 100%; padding: .7em; border: 0; border-radius: 4px;
         background: #1565c0; color: #fff; font-size: 1em; cursor: pointer; }
button.danger { background: #c62828; }
#networks { margin-top: .5em; }
.net { padding: .5em; border-bottom: 1px solid #eee; cursor: pointer; }
.net:hover { background: #f5f5f5; }
.net .sig { float: right; color: #888; font-size: .85em; }
table { width: 100%; border-collapse: collapse; }
td { padding: .4em 0; border-bottom: 1px solid #eee; }
td:first-child { color: #666; }
#msg { margin-top: 1em; color: #2e7d32; }
</style>
</head>
<body>
<div class="card">
{{if .Provisioned}}
<h1>Sentinel</h1>
<table>
<tr><td>Status</td><td>{{if .Connected}}Connected{{else}}Connecting&hellip;{{end}}</td></tr>
<tr><td>Network</td><td>{{.SSID}}</td></tr>
{{if .StationIP}}<tr><td>IP address</td><td>{{.StationIP}}</td></tr>{{end}}
<tr><td>Server</td><td>{{.ServerIP}}:{{.ServerPort}}</td></tr>
</table>
<form method="POST" action="/reset">
<button class="danger" type="submit">Reset configuration</button>
</form>
{{else}}
<h1>Sentinel Setup</h1>
<button type="button" onclick="scan()">Scan networks</button>
<div id="networks"></div>
<label for="ssid">Wi-Fi network</label>
<input id="ssid" placeholder="SSID">
<label for="password">Password</label>
<input id="password" type="password" placeholder="Leave empty for open networks">
<label for="ip">Server IP</label>
<input id="ip" placeholder="192.168.1.10">
<label for="port">Server port</label>
<input id="port" placeholder="8080">
<label for="auth">Auth token</label>
<input id="auth" placeholder="Optional">
<button type="button" onclick="saveConfig()">Save &amp; connect</button>
<div id="msg"></div>
<script>
function scan() {
  document.getElementById('networks').innerHTML = 'Scanning…';
  fetch('/scan').then(function(r) { return r.text(); }).then(function(html) {
    document.getElementById('networks').innerHTML = html;
  });
}
function selectNetwork(ssid) {
  document.getElementById('ssid').value = ssid;
}
function saveConfig() {
  var body = {
    ssid: document.getElementById('ssid').value,
    password: document.getElementById('password').value,
    ip: document.getElementById('ip').value,
    port: document.getElementById('port').value,
    auth: document.getElementById('auth').value
  };
  fetch('/save', {method: 'POST', headers: {'Content-Type': 'application/json'},
                  body: JSON.stringify(body)})
    .then(function(r) {
      document.getElementById('msg').textContent =
        r.ok ? 'Saved. The device is connecting…' : 'Save failed.';
    });
}
</script>
{{end}}
</div>
</body>
</html>
`))

var scanTmpl = template.Must(template.New("scan").Parse(
	`{{if not .}}<div class="net">No networks found</div>{{end}}` +
		`{{range .}}<div class="net" onclick="selectNetwork('{{.SSID}}')">{{.SSID}}` +
		`<span class="sig">{{.SignalDBm}} dBm &middot; {{if .Open}}Open{{else}}Secured{{end}}</span></div>
{{end}}`))

func renderRoot(w io.Writer, snap state.Snapshot) {
	if err := rootTmpl.Execute(w, snap); err != nil {
		log.Printf("portal: render root: %v", err)
	}
}

func renderScan(w io.Writer, nets []wifi.Network) {
	if err := scanTmpl.Execute(w, nets); err != nil {
		log.Printf("portal: render scan: %v", err)
	}
}
