package browse

// pageHTML is the dashboard shell. All pages serve the same document; the
// script decides what to render from location.pathname and the JSON API.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Lovelace</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: #f5f2ea; color: #2b2b2b; }
  header { display: flex; align-items: center; gap: 1rem; padding: 0.75rem 1.5rem; background: #273469; color: #fff; }
  header a { color: #fff; text-decoration: none; margin-left: 1rem; }
  main { max-width: 56rem; margin: 1.5rem auto; padding: 0 1.5rem; }
  #search-box { position: relative; flex: 1; max-width: 28rem; }
  #search-box input { width: 100%; padding: 0.4rem 0.6rem; border-radius: 4px; border: none; }
  #dropdown { position: absolute; left: 0; right: 0; background: #fff; color: #2b2b2b;
              border: 1px solid #ccc; border-radius: 0 0 4px 4px; display: none; z-index: 10; }
  #dropdown.open { display: block; }
  #dropdown .item { padding: 0.4rem 0.6rem; cursor: pointer; }
  #dropdown .item:hover { background: #eef; }
  #dropdown .empty, #dropdown .loading { padding: 0.4rem 0.6rem; color: #777; }
  table { border-collapse: collapse; width: 100%; }
  td, th { padding: 0.4rem 0.6rem; border-bottom: 1px solid #ddd; text-align: left; }
  .toast { position: fixed; bottom: 1rem; right: 1rem; background: #273469; color: #fff;
           padding: 0.6rem 1rem; border-radius: 4px; }
</style>
</head>
<body>
<header>
  <a href="/" style="margin:0;font-weight:bold">Lovelace</a>
  <div id="search-box">
    <input id="search" type="text" placeholder="Search board games..." autocomplete="off">
    <div id="dropdown"></div>
  </div>
  <nav id="nav"></nav>
</header>
<main id="content"></main>
<script>
(function () {
  var state = { loggedIn: false, user: null };

  function el(tag, attrs, text) {
    var e = document.createElement(tag);
    for (var k in (attrs || {})) e.setAttribute(k, attrs[k]);
    if (text) e.textContent = text;
    return e;
  }

  function renderNav() {
    var nav = document.getElementById('nav');
    nav.innerHTML = '';
    if (state.loggedIn) {
      nav.appendChild(el('a', { href: '/wishlist' }, 'Wishlist'));
      nav.appendChild(el('a', { href: '/profile' }, state.user.username));
      var out = el('a', { href: '#' }, 'Log out');
      out.onclick = function (ev) {
        ev.preventDefault();
        fetch('/api/logout', { method: 'POST' }).then(function () { location.href = '/'; });
      };
      nav.appendChild(out);
    } else {
      nav.appendChild(el('a', { href: '/login' }, 'Log in'));
      nav.appendChild(el('a', { href: '/register' }, 'Register'));
    }
  }

  // Live search over the websocket. The server owns debounce and
  // deduplication; every keystroke is forwarded as-is.
  var sock = new WebSocket('ws://' + location.host + '/ws/search');
  var input = document.getElementById('search');
  var dropdown = document.getElementById('dropdown');

  input.addEventListener('input', function () {
    if (sock.readyState === WebSocket.OPEN) {
      sock.send(JSON.stringify({ type: 'input', text: input.value }));
    }
  });
  document.addEventListener('click', function (ev) {
    if (!document.getElementById('search-box').contains(ev.target)) {
      if (sock.readyState === WebSocket.OPEN) sock.send(JSON.stringify({ type: 'clear' }));
    }
  });

  sock.onmessage = function (ev) {
    var frame = JSON.parse(ev.data);
    if (frame.type !== 'state') return;
    dropdown.innerHTML = '';
    dropdown.className = frame.open || frame.loading ? 'open' : '';
    if (frame.loading) {
      dropdown.appendChild(el('div', { 'class': 'loading' }, 'Searching...'));
      return;
    }
    if (!frame.open) return;
    if (frame.results.length === 0) {
      dropdown.appendChild(el('div', { 'class': 'empty' }, 'No games found'));
      return;
    }
    frame.results.forEach(function (g) {
      var item = el('div', { 'class': 'item' }, g.name + (g.yearPublished ? ' (' + g.yearPublished + ')' : ''));
      item.onclick = function () { location.href = '/game/' + encodeURIComponent(g.id); };
      dropdown.appendChild(item);
    });
  };

  function renderWishlist(main) {
    fetch('/api/wishlist').then(function (r) { return r.json(); }).then(function (page) {
      main.appendChild(el('h1', null, 'Your wishlist'));
      var table = el('table');
      (page.content || []).forEach(function (item) {
        var row = el('tr');
        var link = el('a', { href: '/game/' + encodeURIComponent(item.gameId) }, item.gameName);
        var cell = el('td'); cell.appendChild(link); row.appendChild(cell);
        var rm = el('a', { href: '#' }, 'remove');
        rm.onclick = function (ev) {
          ev.preventDefault();
          fetch('/api/wishlist/' + encodeURIComponent(item.gameId), { method: 'DELETE' })
            .then(function () { location.reload(); });
        };
        var rmCell = el('td'); rmCell.appendChild(rm); row.appendChild(rmCell);
        table.appendChild(row);
      });
      main.appendChild(table);
    });
  }

  function renderGame(main, id) {
    fetch('/api/games/' + encodeURIComponent(id)).then(function (r) { return r.json(); }).then(function (g) {
      main.appendChild(el('h1', null, g.name));
      if (g.yearPublished) main.appendChild(el('p', null, 'Published ' + g.yearPublished));
      if (state.loggedIn) {
        var add = el('button', null, 'Add to wishlist');
        add.onclick = function () {
          fetch('/api/wishlist', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ gameId: g.id })
          });
        };
        main.appendChild(add);
      }
    });
  }

  function renderLogin(main) {
    main.appendChild(el('h1', null, 'Log in'));
    var form = el('form');
    var identity = el('input', { placeholder: 'Username or email' });
    var password = el('input', { type: 'password', placeholder: 'Password' });
    var msg = el('p');
    form.appendChild(identity); form.appendChild(password);
    form.appendChild(el('button', { type: 'submit' }, 'Log in'));
    form.appendChild(msg);
    form.onsubmit = function (ev) {
      ev.preventDefault();
      fetch('/api/login', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ identity: identity.value, password: password.value })
      }).then(function (r) {
        if (r.ok) { location.href = '/'; return; }
        r.json().then(function (body) { msg.textContent = body.error; });
      });
    };
    main.appendChild(form);
  }

  function render() {
    renderNav();
    var main = document.getElementById('content');
    main.innerHTML = '';
    var path = location.pathname;
    if (path === '/wishlist') renderWishlist(main);
    else if (path.indexOf('/game/') === 0) renderGame(main, path.slice('/game/'.length));
    else if (path === '/login') renderLogin(main);
    else main.appendChild(el('h1', null, 'Find your next board game'));
  }

  fetch('/api/state').then(function (r) { return r.json(); }).then(function (s) {
    state = s;
    render();
  });
})();
</script>
</body>
</html>
`
