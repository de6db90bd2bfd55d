package web

// Inline page templates sharing one base layout. Styling favors a dense
// single-trip operations view over anything fancy.

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Trip Dashboard</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'Inter',system-ui,sans-serif;background:#f6f7f9;color:#1f2430;font-size:13px;line-height:1.5}
a{color:#0b66c3;text-decoration:none}
a:hover{text-decoration:underline}
nav{background:#102a43;color:#f0f4f8;padding:10px 18px;display:flex;gap:18px;align-items:center}
nav .brand{font-weight:700;font-size:15px}
nav a{color:#bcccdc;padding:3px 8px;border-radius:4px}
nav a:hover{color:#fff;background:#243b53;text-decoration:none}
main{padding:18px;max-width:1180px;margin:0 auto}
h1{font-size:17px;margin-bottom:12px}
h2{font-size:13px;color:#486581;text-transform:uppercase;letter-spacing:.05em;margin:18px 0 8px}
table{width:100%;border-collapse:collapse;font-size:12px;background:#fff}
th{text-align:left;padding:6px 10px;border-bottom:2px solid #d9e2ec;color:#486581;font-size:11px;text-transform:uppercase}
td{padding:5px 10px;border-bottom:1px solid #e4eaf1;vertical-align:top}
.section{background:#fff;border:1px solid #d9e2ec;border-radius:6px;margin-bottom:14px;overflow:hidden}
.section-hdr{padding:7px 12px;border-bottom:1px solid #d9e2ec;font-size:11px;font-weight:600;color:#486581;text-transform:uppercase;background:#f0f4f8}
.cards{display:flex;gap:10px;flex-wrap:wrap;margin-bottom:14px}
.card{background:#fff;border:1px solid #d9e2ec;border-radius:6px;padding:10px 14px;min-width:110px}
.card .val{font-size:18px;font-weight:700}
.card .lbl{font-size:11px;color:#627d98;margin-top:2px}
.kv td:first-child{color:#627d98;width:190px;text-transform:uppercase;font-size:11px}
.row-driver td{background:#e7f6e7}
.row-trip td{background:#fdf3e3}
.row-winner td{background:#e1effd;font-weight:600}
.tag{display:inline-block;padding:1px 7px;border-radius:10px;font-size:11px;background:#e4eaf1;color:#334e68}
.note{padding:10px 12px;color:#627d98;font-style:italic}
.warn{background:#fff3cd;border:1px solid #ffe39c;color:#7a5b00;padding:8px 12px;border-radius:6px;margin-bottom:12px}
.err{background:#fde8e8;border:1px solid #f5b5b5;color:#8a1f1f;padding:8px 12px;border-radius:6px;margin-bottom:12px}
.mono{font-family:ui-monospace,monospace;font-size:11px;color:#243b53}
.dim{color:#627d98}
form.inline{display:flex;gap:8px;align-items:center;flex-wrap:wrap}
input[type=text]{border:1px solid #bcccdc;border-radius:4px;padding:5px 8px;font-size:13px}
button{background:#0b66c3;border:none;color:#fff;padding:6px 14px;border-radius:4px;cursor:pointer;font-size:13px}
details summary{cursor:pointer;color:#627d98;font-size:11px}
details pre{margin-top:4px;background:#f0f4f8;padding:8px;border-radius:4px;font-size:11px;max-height:160px;overflow:auto;white-space:pre-wrap;word-break:break-all}
#map{height:520px;border-radius:6px;border:1px solid #d9e2ec}
</style>
{{block "head" .}}{{end}}
</head>
<body>
<nav>
  <span class="brand">Trip Dashboard</span>
  <a href="/">Load trip</a>
  {{with .TripKey}}<a href="/trip/{{.}}">Dashboard</a><a href="/trip/{{.}}/map">Map</a>{{end}}
</nav>
<main>
{{template "content" .}}
</main>
</body>
</html>
{{end}}
`

const tmplIndex = `
{{define "content"}}
<h1>Load a trip</h1>

<div class="section">
  <div class="section-hdr">Upload trip JSON</div>
  <div style="padding:12px">
    <form class="inline" method="POST" action="/upload" enctype="multipart/form-data">
      <input type="file" name="trip_json" accept=".json,application/json" required>
      <button type="submit">Upload</button>
    </form>
  </div>
</div>

<div class="section">
  <div class="section-hdr">Fetch from trip event API</div>
  <div style="padding:12px">
  {{if .APIConfigured}}
    <form class="inline" method="POST" action="/fetch">
      <input type="text" name="trip_id" placeholder="Trip ID" required>
      <button type="submit">Fetch</button>
    </form>
  {{else}}
    <span class="dim">No trip API configured. Start with --trip_api_url to enable fetching by trip ID.</span>
  {{end}}
  </div>
</div>

{{if .Recent}}
<h2>Recently loaded</h2>
<div class="section">
<table>
<tr><th>Trip</th><th>Source</th><th>Events</th><th>Loaded</th></tr>
{{range .Recent}}
<tr>
  <td><a href="/trip/{{.Key}}" class="mono">{{if .TripID}}{{.TripID}}{{else}}{{.Key}}{{end}}</a></td>
  <td><span class="tag">{{.Source}}</span></td>
  <td>{{len .Events}}</td>
  <td class="dim">{{fmtTime .LoadedAt}}</td>
</tr>
{{end}}
</table>
</div>
{{end}}
{{end}}
`

const tmplTrip = `
{{define "content"}}
<h1>Trip {{if .Record.TripID}}{{.Record.TripID}}{{else}}<span class="mono">{{.Record.Key}}</span>{{end}}
  <span class="dim" style="font-size:12px;font-weight:400">{{len .Record.Events}} events · loaded {{fmtTime .Record.LoadedAt}}</span>
</h1>

<h2>Passenger &amp; Trip Info</h2>
{{if .HasSummary}}
<div class="cards">
  <div class="card"><div class="val">{{.Summary.PassengerID}}</div><div class="lbl">Passenger ID</div></div>
  <div class="card"><div class="val">{{.Summary.PIN}}</div><div class="lbl">PIN</div></div>
  <div class="card"><div class="val">{{.Summary.Seats}}</div><div class="lbl">Seats</div></div>
  <div class="card"><div class="val">{{.Summary.PreBooking}}</div><div class="lbl">Pre-booking</div></div>
  <div class="card"><div class="val">{{.Summary.ServiceGroup}}</div><div class="lbl">Service Group</div></div>
  <div class="card"><div class="val">{{len .Summary.Pickups}}</div><div class="lbl">Pickups</div></div>
  <div class="card"><div class="val">{{len .Summary.Drops}}</div><div class="lbl">Drops</div></div>
</div>
{{if .Summary.Pickups}}
<div class="section">
  <div class="section-hdr">Pickup Locations</div>
  <table>
  <tr><th>Lat</th><th>Lng</th><th>Address</th></tr>
  {{range .Summary.Pickups}}<tr><td>{{fmtCoord .Lat}}</td><td>{{fmtCoord .Lng}}</td><td>{{.Address}}</td></tr>{{end}}
  </table>
</div>
{{end}}
{{if .Summary.Drops}}
<div class="section">
  <div class="section-hdr">Drop Locations (Stops)</div>
  <table>
  <tr><th>#</th><th>Lat</th><th>Lng</th><th>Address</th></tr>
  {{range $i, $d := .Summary.Drops}}<tr><td>{{add $i 1}}</td><td>{{fmtCoord $d.Lat}}</td><td>{{fmtCoord $d.Lng}}</td><td>{{$d.Address}}</td></tr>{{end}}
  </table>
</div>
{{end}}
{{else}}
<div class="section"><div class="note">No trip_created event in this trip</div></div>
{{end}}

<h2>Ride &amp; Trip Overview</h2>
<div class="section">
{{if .Overview}}
<table>
<tr><th>Ride ID</th><th>Trip ID</th><th>Event</th><th>Driver ID</th></tr>
{{range .Overview}}
<tr><td class="mono">{{.RideID}}</td><td class="mono">{{.TripID}}</td><td><span class="tag">{{.Event}}</span></td><td class="mono">{{.DriverID}}</td></tr>
{{end}}
</table>
{{else}}<div class="note">No ride/trip data available</div>{{end}}
</div>

<h2>Estimated Trip Details</h2>
<div class="section">
{{if .Fares}}
<table>
<tr><th>Currency</th><th>Total Distance (km)</th><th>Total Duration (sec)</th><th>Stops</th><th>Base Fare</th><th>Distance Fare</th><th>Duration Fare</th><th>Waiting Fare</th><th>Free Waiting</th><th>Extra Ride</th><th>Above KM</th><th>Upfront</th><th>Ride Hour</th></tr>
{{range .Fares}}
<tr><td>{{.Currency}}</td><td>{{.DistanceKm}}</td><td>{{.DurationSec}}</td><td>{{.Stops}}</td><td>{{.BaseFare}}</td><td>{{.DistanceFare}}</td><td>{{.DurationFare}}</td><td>{{.WaitingFare}}</td><td>{{.FreeWaitingTime}}</td><td>{{.ExtraRideFare}}</td><td>{{.AboveKmFare}}</td><td>{{.IsUpfront}}</td><td>{{.RideHourEnabled}}</td></tr>
{{end}}
</table>
{{else}}<div class="note">No fare update event in this trip</div>{{end}}
</div>

<h2>Fare Price File</h2>
{{range .PriceTables}}
<div class="section">
  <div class="section-hdr">{{.Title}}</div>
  {{if .Rows}}
  <table>
  <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
  {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
  </table>
  {{else}}<div class="note">No {{.Title | lower}} data available</div>{{end}}
</div>
{{else}}
<div class="section"><div class="note">No price file in this trip</div></div>
{{end}}

<h2>Actual Trip Details</h2>
<div class="section">
{{if .HasActual}}
<table class="kv">
{{range .Actual}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}
</table>
{{else}}<div class="note">Trip not completed yet</div>{{end}}
</div>

<h2>Trip Bidding Details</h2>
<div class="section">
{{if .Bidding}}
<table>
<tr><th>Trip ID</th><th>Driver ID</th><th>Bidding?</th><th>Bid Amount</th><th>Assigned?</th><th>Winner?</th><th>Selection Type</th><th>ETA (s)</th><th>Distance (m)</th></tr>
{{range .Bidding}}
<tr{{if .Winner}} class="row-winner"{{end}}>
  <td class="mono">{{.TripID}}</td><td class="mono">{{.DriverID}}</td>
  <td>{{.Bidding}}</td><td>{{.BidAmount}}</td><td>{{.Assigned}}</td><td>{{.Winner}}</td>
  <td>{{.SelectionType}}</td><td>{{.ETA}}</td><td>{{.Distance}}</td>
</tr>
{{end}}
</table>
{{else}}<div class="note">No bidding/driver assignment data available</div>{{end}}
</div>

<h2>Complete Trip Events Timeline</h2>
<div class="section">
{{if .Timeline}}
<table id="timeline">
<tr><th>Timestamp</th><th>Event Type</th><th>Category</th><th>Driver ID</th><th>Distance</th><th>ETA</th><th>Location</th><th>Extra Info</th></tr>
{{range .Timeline}}
<tr class="{{categoryClass .Category}}">
  <td class="dim">{{.TimeLabel}}</td>
  <td><span class="tag">{{.Type}}</span></td>
  <td>{{.Category}}</td>
  <td class="mono">{{.DriverID}}</td>
  <td>{{.Distance}}</td>
  <td>{{.ETA}}</td>
  <td>{{truncate .Location 60}}</td>
  <td><details><summary>body</summary><pre>{{.Body}}</pre></details></td>
</tr>
{{end}}
</table>
{{else}}<div class="note">No events</div>{{end}}
</div>

{{if .Record.Live}}
<script>
(function() {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var sock = new WebSocket(proto + location.host + "/api/trip/{{.Record.Key}}/live");
  var rendered = {{len .Record.Events}};
  sock.onmessage = function(ev) {
    var update = JSON.parse(ev.data);
    if (update.event_count !== rendered) location.reload();
  };
})();
</script>
{{end}}
{{end}}
`

const tmplError = `
{{define "content"}}
<h1>{{.Title}}</h1>
<div class="err">{{.Message}}</div>
<p><a href="/">Back to trip loading</a></p>
{{end}}
`
