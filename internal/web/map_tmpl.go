package web

// Leaflet map page. Marker data and the route polyline come from the
// map.json endpoint so the page itself stays static.

const tmplMap = `
{{define "head"}}
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
{{end}}
{{define "content"}}
<h1>Trip Map {{with .Record.TripID}}<span class="mono">{{.}}</span>{{end}}</h1>
{{with .Warning}}<div class="warn">{{.}}</div>{{end}}
<div id="map"></div>
<script>
var map = L.map("map").setView([{{.Center.Lat}}, {{.Center.Lng}}], 12);
L.tileLayer("https://tile.openstreetmap.org/{z}/{x}/{y}.png", {
  maxZoom: 19,
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);

function dropIcon(n) {
  return L.divIcon({
    html: '<div style="background:#d64545;color:#fff;border-radius:50%;width:28px;height:28px;text-align:center;line-height:28px;font-weight:bold">' + n + '</div>',
    className: "",
    iconSize: [28, 28]
  });
}

fetch("/api/trip/{{.Record.Key}}/map.json")
  .then(function(r) { return r.json(); })
  .then(function(data) {
    if (data.warning) {
      var banner = document.createElement("div");
      banner.className = "warn";
      banner.textContent = data.warning;
      document.getElementById("map").before(banner);
    }
    var bounds = [];
    if (data.pickup) {
      L.marker([data.pickup.lat, data.pickup.lng]).addTo(map).bindPopup(data.pickup.label);
      bounds.push([data.pickup.lat, data.pickup.lng]);
    }
    (data.drops || []).forEach(function(d) {
      L.marker([d.lat, d.lng], {icon: dropIcon(d.seq)}).addTo(map).bindPopup("Drop " + d.seq + ": " + d.label);
      bounds.push([d.lat, d.lng]);
    });
    if (data.driver) {
      L.circleMarker([data.driver.lat, data.driver.lng], {radius: 8, color: "#0b66c3"})
        .addTo(map).bindPopup(data.driver.label);
      bounds.push([data.driver.lat, data.driver.lng]);
    }
    if (data.route && data.route.latlngs && data.route.latlngs.length > 0) {
      L.polyline(data.route.latlngs, {weight: 4, opacity: 0.7}).addTo(map).bindTooltip("Planned Route");
      bounds = bounds.concat(data.route.latlngs);
    }
    if (bounds.length > 0) {
      map.fitBounds(bounds, {padding: [30, 30]});
    }
  });
</script>
{{end}}
`
