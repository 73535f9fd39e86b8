package web

import "net/http"

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>lumen</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; margin: 2em; }
img { image-rendering: pixelated; width: 512px; height: 512px; border: 1px solid #444; }
pre { background: #1a1a1a; padding: 1em; overflow-x: auto; }
a { color: #6cf; }
</style>
</head>
<body>
<h1>lumen</h1>
<img id="preview" src="/api/preview" alt="preview">
<pre id="status">loading...</pre>
<p>
<a href="/api/status">status</a> ·
<a href="/api/data">data</a> ·
<a href="/api/layouts">layouts</a> ·
<a href="/api/datasources">datasources</a>
</p>
<script>
async function tick() {
  try {
    const r = await fetch('/api/status');
    document.getElementById('status').textContent = JSON.stringify(await r.json(), null, 2);
    document.getElementById('preview').src = '/api/preview?t=' + Date.now();
  } catch (e) {}
}
tick();
setInterval(tick, 5000);
</script>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}
