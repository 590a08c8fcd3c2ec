package web

// editorPage is the browser editor: it mirrors the LCD, lists the roster and posts
// actions over the websocket.
const editorPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Points Counter</title>
<style>
body { font-family: sans-serif; margin: 1em; }
pre#lcd { background: #4a7de0; color: #f0f4ff; padding: .5em; display: inline-block; font-size: 1.2em; }
table { border-collapse: collapse; margin: 1em 0; }
td, th { padding: .2em .6em; border-bottom: 1px solid #ccc; }
#err { color: #b00; }
</style>
</head>
<body>
<h1>Points Counter</h1>
<pre id="lcd"></pre>
<table id="roster"><thead><tr><th>Player</th><th>Points</th><th>Dmg 1</th><th>Dmg 2</th><th>Dmg 3</th></tr></thead><tbody></tbody></table>
<p>
<button onclick="send({kind:'reset',value:20})">Reset 20</button>
<button onclick="send({kind:'reset',value:40})">Reset 40</button>
</p>
<form onsubmit="createRoster(); return false;">
<input id="names" placeholder="Alice, Bob">
<button type="submit">Create</button>
</form>
<p id="err"></p>
<script>
let ws;
function send(a) {
  if (ws && ws.readyState === 1) { ws.send(JSON.stringify(a)); return; }
  fetch('/api/action', {method: 'POST', body: JSON.stringify(a)})
    .then(r => r.json()).then(j => { document.getElementById('err').textContent = j.error || ''; });
}
function adjust(p, c, d) { send({kind: 'adjust', player: p, column: c, delta: d}); }
function createRoster() {
  const names = document.getElementById('names').value.split(',').map(s => s.trim()).filter(s => s);
  send({kind: 'createRoster', names: names});
}
function show(st) {
  if (st.error) { document.getElementById('err').textContent = st.error; return; }
  document.getElementById('err').textContent = '';
  document.getElementById('lcd').textContent = st.lcd.join('\n');
  const body = document.querySelector('#roster tbody');
  body.innerHTML = '';
  st.players.forEach((pl, p) => {
    const tr = document.createElement('tr');
    const name = document.createElement('td');
    name.textContent = pl.name;
    tr.appendChild(name);
    pl.points.forEach((v, c) => {
      const td = document.createElement('td');
      td.innerHTML = '<button>-</button> <span></span> <button>+</button>';
      td.querySelector('span').textContent = v;
      const b = td.querySelectorAll('button');
      b[0].onclick = () => adjust(p, c, -1);
      b[1].onclick = () => adjust(p, c, 1);
      tr.appendChild(td);
    });
    body.appendChild(tr);
  });
}
function connect() {
  ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
  ws.onmessage = e => show(JSON.parse(e.data));
  ws.onclose = () => setTimeout(connect, 1000);
}
connect();
</script>
</body>
</html>
`
